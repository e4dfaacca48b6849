package scheduler

// RunDigest ejecuta la tarea una vez, sin esperar a cron (tests).
func (s *Scheduler) RunDigest() { s.sendDigest() }
