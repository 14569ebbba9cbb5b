// Package logger provides structured logging on top of zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers and a correlation id carried through context.Context.
//
// # Configuration
//
//	logging:
//	  level: "warn"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.WithComponent("github")
//	log.WithContext(ctx).Debug("page fetched", logger.Fields("page", 2))
package logger
