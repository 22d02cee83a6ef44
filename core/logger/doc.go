// Package logger provides a structured logging facility based on Zap.
//
// New builds a production (JSON) or development logger from Config, and
// WithRayID tags entries with the request id set by the rayid middleware so
// all lines of one reconciliation request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Reconciliation failed", zap.Error(err))
package logger
