package laz

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// gpsWeekEpochJD is the Julian day of the GPS time origin, 1980-01-06.
var gpsWeekEpochJD = julian.CalendarGregorianToJD(1980, 1, 6.0)

// adjustedStandardGPSOffset is the offset LAS applies to raw GPS seconds
// when the header's global encoding bit 0 selects "adjusted standard" GPS
// time instead of raw GPS week seconds.
const adjustedStandardGPSOffset = 1e9

// GPSTimeToUTC converts a decoded point's GPS time to a calendar timestamp.
// globalEncoding is the header's Global_encoding field, whose bit 0
// distinguishes adjusted standard GPS time from GPS week time.
func GPSTimeToUTC(gpsSeconds float64, globalEncoding uint16) time.Time {
	seconds := gpsSeconds
	if globalEncoding&0x01 != 0 {
		seconds += adjustedStandardGPSOffset
	}

	jd := gpsWeekEpochJD + seconds/86400.0
	year, month, day := julian.JDToCalendar(jd)

	dayInt := int(day)
	fractionalDay := day - float64(dayInt)
	daySeconds := fractionalDay * 86400.0

	hour := int(daySeconds / 3600)
	minute := int(math.Mod(daySeconds, 3600) / 60)
	sec := math.Mod(daySeconds, 60)
	wholeSec := int(sec)
	nsec := int((sec - float64(wholeSec)) * 1e9)

	return time.Date(year, time.Month(month), dayInt, hour, minute, wholeSec, nsec, time.UTC)
}
