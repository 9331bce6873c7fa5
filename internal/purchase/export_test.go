package purchase

import "time"

// SetNow overrides the service clock for tests in package purchase_test.
func SetNow(s Service, now func() time.Time) { s.(*service).now = now }
