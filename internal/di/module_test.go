package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/ahmedmubarak14/poconfirm/internal/app"
	"github.com/ahmedmubarak14/poconfirm/internal/config"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/repository"
	"github.com/ahmedmubarak14/poconfirm/internal/storage/postgres"
	"github.com/ahmedmubarak14/poconfirm/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		TokenSecret:        "secret",
		TokenStrategy:      "hmac",
		NotifyPollInterval: time.Millisecond,
		WorkerPoolSize:     1,
		MaxNotifyBatch:     1,
		SubmitLockTTL:      time.Second,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	orderRepo := test.NewOrderRepositoryStub()
	notificationRepo := &test.NotificationRepositoryStub{}

	var facade *app.POFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.NotificationRepository(notificationRepo)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected facade instance")
	}
}
