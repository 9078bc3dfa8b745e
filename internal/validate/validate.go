package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	rePlate    = regexp.MustCompile(`^[A-Za-z0-9-]{2,16}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reVType    = regexp.MustCompile(`^(car|van|truck)$`)
	reVStatus  = regexp.MustCompile(`^(operational|maintenance_due|in_repair)$`)
	reMType    = regexp.MustCompile(`^(oil-change|inspection|general-service|repair|upkeep)$`)
	rePriority = regexp.MustCompile(`^(low|medium|high|urgent)$`)
)

// Plate validates a registration plate.
func Plate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePlate.MatchString(s)
}

// ID validates a resource identifier (uuid or slug).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

// Text validates free-form description text.
func Text(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 500 {
		return "", false
	}
	return s, true
}

func VehicleType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reVType.MatchString(s)
}

func VehicleStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reVStatus.MatchString(s)
}

func MaintenanceType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reMType.MatchString(s)
}

func Priority(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePriority.MatchString(s)
}

// Year sanity-checks a model year.
func Year(n int) bool { return n >= 1950 && n <= time.Now().Year()+1 }

func NonNeg(n int) bool { return n >= 0 }

func Pos(n int) bool { return n > 0 }
