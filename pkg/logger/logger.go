package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelCritical nivel propio para errores que requieren atención inmediata.
const LevelCritical = "critical"

// Config opciones para el logger. Se arma una sola vez en el arranque desde config.Config.
type Config struct {
	Env          string // development -> consola legible; production -> JSON
	Level        string // trace, debug, info, warn, error
	Port         int    // se incluye como metadato en cada línea
	ToFile       bool   // además escribe JSON en FilePath
	FilePath     string // por defecto logs/server.log
	EnableSentry bool
	SentryDSN    string
	Output       io.Writer        // opcional; por defecto os.Stdout
	Transport    sentry.Transport // opcional; por defecto el HTTP de sentry
}

// Logger wrapper sobre zerolog para inyección y consistencia, con reporte remoto opcional a Sentry.
// Es seguro para uso concurrente: cada reporte a Sentry usa su propio hub clonado.
type Logger struct {
	zl   zerolog.Logger
	hub  *sentry.Hub
	file *os.File
}

// New crea un logger estructurado. En development usa salida legible; en production JSON.
func New(cfg Config) (*Logger, error) {
	var out io.Writer = os.Stdout
	if cfg.Output != nil {
		out = cfg.Output
	}
	var w io.Writer = out
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}

	l := &Logger{}
	if cfg.ToFile {
		path := cfg.FilePath
		if path == "" {
			path = filepath.Join("logs", "server.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de logs: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("abrir archivo de log: %w", err)
		}
		l.file = f
		w = zerolog.MultiLevelWriter(w, f)
	}

	if cfg.EnableSentry && cfg.SentryDSN != "" {
		client, err := sentry.NewClient(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
			Transport:   cfg.Transport,
		})
		if err != nil {
			l.closeFile()
			return nil, fmt.Errorf("inicializar sentry: %w", err)
		}
		l.hub = sentry.NewHub(client, sentry.NewScope())
	}

	host, _ := os.Hostname()
	l.zl = zerolog.New(w).Level(parseLevel(cfg.Level)).With().
		Timestamp().
		Str("env", cfg.Env).
		Str("host", host).
		Int("port", cfg.Port).
		Logger()

	// Redirigir el logger global de zerolog para librerías que lo usen
	log.Logger = l.zl

	return l, nil
}

// Nop logger que descarta todo; útil en tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Trace, Debug, Info, Warn, Error delegados a zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog devuelve el logger interno por si se necesita la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Warning registra una advertencia y, si Sentry está activo, la envía como mensaje de nivel warning.
func (l *Logger) Warning(message, context string) {
	l.zl.Warn().Str("context", context).Msg(message)
	hub := l.reportHub()
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("context", orDefault(context, "general"))
		scope.SetLevel(sentry.LevelWarning)
		hub.CaptureMessage(message)
	})
}

// Handle registra un error manejado (context = módulo, operation = operación que falló).
// Nunca altera el flujo del llamador.
func (l *Logger) Handle(err error, context, operation string) {
	if err == nil {
		err = errors.New("error desconocido")
	}
	ev := l.zl.Error().Err(err).Str("context", context)
	if operation != "" {
		ev = ev.Str("operation", operation)
	}
	ev.Msg(withOperation(err.Error(), operation))

	hub := l.reportHub()
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("context", orDefault(context, "general"))
		if operation != "" {
			scope.SetTag("operation", operation)
		}
		scope.SetLevel(sentry.LevelError)
		hub.CaptureException(err)
	})
}

// HandleCritical igual que Handle pero marcado como crítico y agrupado en Sentry por contexto.
func (l *Logger) HandleCritical(err error, context, operation string) {
	if err == nil {
		err = errors.New("error desconocido")
	}
	ev := l.zl.Error().Err(err).Str("level_tag", LevelCritical).Str("context", context)
	if operation != "" {
		ev = ev.Str("operation", operation)
	}
	ev.Msg("[CRÍTICO] " + withOperation(err.Error(), operation))

	hub := l.reportHub()
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("context", context)
		scope.SetTag("critical", "true")
		if operation != "" {
			scope.SetTag("operation", operation)
		}
		scope.SetLevel(sentry.LevelError)
		scope.SetFingerprint([]string{"critical-error", context})
		hub.CaptureException(err)
	})
}

// Flush espera a que Sentry envíe los eventos pendientes y cierra el archivo de log.
func (l *Logger) Flush(timeout time.Duration) {
	if l.hub != nil {
		l.hub.Flush(timeout)
	}
	l.closeFile()
}

// reportHub hub propio para un reporte. La pila de scopes de un hub no se puede compartir entre goroutines.
func (l *Logger) reportHub() *sentry.Hub {
	if l.hub == nil {
		return nil
	}
	return l.hub.Clone()
}

func (l *Logger) closeFile() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

func withOperation(msg, operation string) string {
	if operation == "" {
		return msg
	}
	return msg + " - operación: " + operation
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
