// Package scheduler ejecuta las tareas periódicas (resumen por correo).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// DigestSender envía el resumen; devuelve la cantidad de destinatarios.
type DigestSender interface {
	Send(ctx context.Context) (int, error)
}

// Scheduler envuelve cron con el logger de la aplicación.
type Scheduler struct {
	cron    *cron.Cron
	digest  DigestSender
	spec    string
	timeout time.Duration
	log     *logger.Logger
}

// New construye el scheduler. Con spec vacío el resumen queda desactivado.
func New(spec string, digest DigestSender, log *logger.Logger) *Scheduler {
	log = log.Component("scheduler")
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger{log: log}), cron.WithChain(cron.Recover(cronLogger{log: log}))),
		digest:  digest,
		spec:    spec,
		timeout: 2 * time.Minute,
		log:     log,
	}
}

// Start programa el resumen y arranca cron. Una expresión inválida es error de arranque.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.log.Info().Msg("resumen por correo desactivado (DIGEST_CRON vacío)")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.sendDigest); err != nil {
		return fmt.Errorf("scheduler: DIGEST_CRON %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("scheduler iniciado")
	return nil
}

// Stop detiene cron y espera la tarea en curso hasta que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler: tarea en curso no terminó antes del cierre")
	}
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.digest.Send(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("resumen por correo fallido")
		return
	}
	if n == 0 {
		s.log.Debug().Msg("resumen omitido: SMTP incompleto o sin destinatarios")
		return
	}
	s.log.Info().Int("recipients", n).Msg("resumen enviado")
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
