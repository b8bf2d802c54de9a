// Package logger builds log/slog loggers for SDK consumers.
//
// The SDK itself logs nothing on resolution hot paths; middleware and store
// adapters accept an optional *slog.Logger built here (or anywhere else).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatJSON),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("service", "storefront")),
//	)
package logger
