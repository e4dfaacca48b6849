package analytics

import "time"

// SetNow fija el reloj del dashboard en los tests.
func (uc *DashboardUseCase) SetNow(now func() time.Time) { uc.now = now }
