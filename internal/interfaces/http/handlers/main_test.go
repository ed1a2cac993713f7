package handlers

import (
	"os"
	"testing"

	"github.com/konqer/konqer-api/internal/shared/utils"
)

func TestMain(m *testing.M) {
	if err := utils.RegisterGinValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
