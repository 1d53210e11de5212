package repository

import (
	"fmt"
	"time"
)

// dbTimeLayout is the DATETIME text form shared by both backends.  Values
// are always written and compared in UTC.
const dbTimeLayout = "2006-01-02 15:04:05"

// formatDBTime renders a timestamp the way DATETIME columns store it.
func formatDBTime(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// dbTime scans a DATETIME column regardless of how the active driver
// surfaces it.  The embedded driver converts DATETIME decltypes to time.Time
// before Scan ever sees them; the MySQL driver hands over the raw column
// text because the DSN omits parseTime.  Both land here.
type dbTime struct {
	t time.Time
}

// Time returns the scanned value in UTC.
func (d dbTime) Time() time.Time { return d.t }

func (d *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.t = time.Time{}
		return nil
	case time.Time:
		d.t = v.UTC()
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	}
	return fmt.Errorf("unsupported DATETIME column type %T", src)
}

func (d *dbTime) parse(s string) error {
	t, err := parseDBTime(s)
	if err != nil {
		return err
	}
	d.t = t
	return nil
}

// parseDBTime turns a DATETIME column's text form back into a UTC time.Time.
// Fractional seconds, if a backend ever returns them, are cut off.
func parseDBTime(s string) (time.Time, error) {
	if len(s) > len(dbTimeLayout) {
		s = s[:len(dbTimeLayout)]
	}
	t, err := time.Parse(dbTimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
