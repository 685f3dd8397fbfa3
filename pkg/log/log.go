package log

import (
	"fmt"
	"log"
	"os"
)

type Logger interface {
	Error(format string, v ...any)
	Warn(format string, v ...any)
	Info(format string, v ...any)
	Debug(format string, v ...any)
	Close() error
}

// New returns a logger writing to stderr/stdout, or to the file at path
// when it is non-empty. Debug output is dropped unless verbose is set.
func New(path string, verbose bool) Logger {
	if path != "" {
		file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal(err)
		}
		return &StdLog{
			err:     log.New(file, "ERROR ", log.Ldate|log.Ltime),
			wrn:     log.New(file, "WARN ", log.Ldate|log.Ltime),
			inf:     log.New(file, "INFO ", log.Ldate|log.Ltime),
			dbg:     log.New(file, "DEBUG ", log.Ldate|log.Ltime),
			verbose: verbose,
			file:    file,
		}
	}
	return &StdLog{
		err:     log.New(os.Stderr, "", 0),
		wrn:     log.New(os.Stderr, "", 0),
		inf:     log.New(os.Stdout, "", 0),
		dbg:     log.New(os.Stderr, "", 0),
		verbose: verbose,
	}
}

type StdLog struct {
	err, wrn, inf, dbg *log.Logger
	verbose            bool
	file               *os.File
}

func (l *StdLog) Error(format string, v ...any) {
	_ = l.err.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Warn(format string, v ...any) {
	_ = l.wrn.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Info(format string, v ...any) {
	_ = l.inf.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Debug(format string, v ...any) {
	if !l.verbose {
		return
	}
	_ = l.dbg.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
