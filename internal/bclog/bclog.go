// Package bclog wraps logrus with the status/done/info/warning call shape
// original_source/src/utils.cpp uses (printStatus/printDone/printInfo/
// printWarning): a stage announcement without a trailing newline, a later
// "Done." to close it out, a plain info line, and a warning line. Structured
// logrus fields replace the original's ad-hoc ostringstream concatenation.
package bclog

import (
	"github.com/sirupsen/logrus"
)

// Logger is the package-level logrus instance every collaborator logs
// through. Callers needing request-scoped fields should use WithField
// rather than constructing their own logrus.Logger.
var Logger = logrus.New()

func init() {
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Status announces the start of a long-running stage (counting barcodes,
// building the index, ...). Pair with Done once the stage completes.
func Status(stage string) {
	Logger.WithField("stage", stage).Info("starting")
}

// Done closes out the most recently announced stage.
func Done(stage string) {
	Logger.WithField("stage", stage).Info("done")
}

// Info logs a one-off informational message (e.g. the inferred cutoff).
func Info(message string) {
	Logger.Info(message)
}

// Warning logs a non-fatal warning.
func Warning(message string) {
	Logger.Warn(message)
}
