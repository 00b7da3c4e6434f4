package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time supplies weekday constants for the dining schedule

	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign admin JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for admin password hashing

	OpenTime       string // daily opening time, "HH:MM" (default 17:00)
	CloseTimeLate  string // closing time Tue-Sat, "HH:MM" (default 23:00)
	CloseTimeEarly string // closing time Sun-Mon, "HH:MM" (default 21:00)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Dining-hours
// variables are optional and fall back to the standard schedule.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),                   // environment (dev/test/prod)
		Port:           must("APP_PORT"),                  // port to bind the HTTP server
		DBUser:         must("DB_USER"),                   // database user
		DBPass:         os.Getenv("DB_PASS"),              // database password (empty allowed)
		DBHost:         must("DB_HOST"),                   // database host
		DBPort:         must("DB_PORT"),                   // database port
		DBName:         must("DB_NAME"),                   // database name
		JWTSecret:      must("JWT_SECRET"),                // secret used for signing JWTs
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
		BcryptCost:     mustInt("BCRYPT_COST"),            // bcrypt cost factor
		OpenTime:       getenv("DINING_OPEN_TIME", "17:00"),
		CloseTimeLate:  getenv("DINING_CLOSE_LATE", "23:00"),
		CloseTimeEarly: getenv("DINING_CLOSE_EARLY", "21:00"),
	}
}

// DiningHours builds the weekly dining schedule from the configured
// times.  Invalid values fall back to the standard schedule so a typo
// in an env var cannot take bookings offline.
func (c Config) DiningHours() timeslot.Hours {
	open, err1 := timeslot.Parse(c.OpenTime)
	closeLate, err2 := timeslot.Parse(c.CloseTimeLate)
	closeEarly, err3 := timeslot.Parse(c.CloseTimeEarly)
	if err1 != nil || err2 != nil || err3 != nil {
		log.Printf("config: invalid dining hours, using defaults")
		return timeslot.DefaultHours()
	}
	var h timeslot.Hours
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		span := timeslot.Span{Open: open, Close: closeEarly}
		if wd >= time.Tuesday {
			span.Close = closeLate
		}
		h.ByWeekday[wd] = span
	}
	return h
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
