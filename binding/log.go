package binding

import "github.com/sirupsen/logrus"

var log logrus.FieldLogger = logrus.WithField("component", "binding")

// SetLogger replaces the package logger. It must be called before any class
// table is built or any object is used.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.WithField("component", "binding")
	}
	log = l
}
