package main

import (
	"context"
	"fmt"
	"os/signal"

	"github.com/leandrodaf/midikbd/internal/logger"
	"github.com/leandrodaf/midikbd/sdk/contracts"
	"github.com/leandrodaf/midikbd/sdk/midikbd"
	"golang.org/x/sys/unix"
)

func main() {
	log := logger.NewZapLogger()

	devices, err := midikbd.ListDevices(contracts.WithLogger(log))
	if err != nil || len(devices) == 0 {
		log.Error("No keyboards found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available keyboards:", devices)

	session, err := midikbd.Start(devices[0].ID, "midikbd example",
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.DebugLevel),
		contracts.WithRootNote(48),
	)
	if err != nil {
		log.Error("Failed to start session", log.Field().Error("error", err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()

	fmt.Printf("Playing %s on %q. Press ^C on the keyboard to exit.\n", session.DeviceName(), session.PortName())
	if err := session.Run(ctx); err != nil {
		log.Error("Session ended with error", log.Field().Error("error", err))
	}
}
