package services

import (
	"os"
	"testing"

	"github.com/renukakulkarni2721/MindMirror/config"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop().Sugar()
	os.Exit(m.Run())
}
