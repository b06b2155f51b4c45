package domain

import (
	"fmt"
	"time"
)

// TimestampLayout renders capture times as YYYY_MM_DD_HH_MM_SS.
const TimestampLayout = "2006_01_02_15_04_05"

// DestinationName builds the archive name for a capture time. Ordinal 0 is
// the plain name; ordinals from 1 insert an "_f{n}" disambiguator before the
// prefix.
func DestinationName(takenAt time.Time, prefix, ext string, ordinal int) string {
	stamp := takenAt.Format(TimestampLayout)
	if ordinal <= 0 {
		return fmt.Sprintf("%s_%s.%s", stamp, prefix, ext)
	}
	return fmt.Sprintf("%s_f%d_%s.%s", stamp, ordinal, prefix, ext)
}
