package bootstrap

import "go.uber.org/zap"

// NewLogger builds the process logger and installs it as the zap global.
// Production uses JSON output at info level; everything else the
// development console encoder.
func NewLogger(production bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
