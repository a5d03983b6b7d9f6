package config

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// RequiredEnvKeys is the environment variable contract read at startup
var RequiredEnvKeys = []string{
	"API_HOST",
	"API_PORT",
	"SCRAPE_DELAY",
	"MAX_RETRIES",
	"USER_AGENT",
	"ADDRESS_MATCH_THRESHOLD",
	"PRICE_CORRELATION_THRESHOLD",
	"LOG_LEVEL",
	"OPENROUTER_API_KEY",
}

var envLineRe = regexp.MustCompile(`^(?:export\s+)?([A-Za-z_][A-Za-z0-9_]*)=`)

// LoadDotEnv loads a .env file into the process environment if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ValidateEnvFile checks an env file against the configuration contract:
// every line is a comment or KEY=value, all required keys are present exactly
// once, numeric values parse and thresholds stay within [0,1].
func ValidateEnvFile(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return fmt.Errorf("open env file: %w", err)
	}
	defer f.Close()

	counts := map[string]int{}
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := envLineRe.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("line %d is neither a comment nor a KEY=value pair", lineNum)
		}
		counts[m[1]]++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read env file: %w", err)
	}

	for key, n := range counts {
		if n > 1 {
			return fmt.Errorf("key %s is defined %d times", key, n)
		}
	}
	for _, key := range RequiredEnvKeys {
		if counts[key] == 0 {
			return fmt.Errorf("required key %s is missing", key)
		}
	}

	vals, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("parse env file: %w", err)
	}
	for _, key := range RequiredEnvKeys {
		if vals[key] == "" {
			return fmt.Errorf("key %s has an empty value", key)
		}
	}
	return validateEnvValues(vals)
}

// validateEnvValues applies type and range rules to parsed env values
func validateEnvValues(vals map[string]string) error {
	port, err := strconv.Atoi(vals["API_PORT"])
	if err != nil {
		return fmt.Errorf("API_PORT %q is not an integer", vals["API_PORT"])
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("API_PORT %d is out of range", port)
	}

	delay, err := strconv.ParseFloat(vals["SCRAPE_DELAY"], 64)
	if err != nil {
		return fmt.Errorf("SCRAPE_DELAY %q is not a number", vals["SCRAPE_DELAY"])
	}
	if delay < 0 {
		return fmt.Errorf("SCRAPE_DELAY must be non-negative")
	}

	retries, err := strconv.Atoi(vals["MAX_RETRIES"])
	if err != nil {
		return fmt.Errorf("MAX_RETRIES %q is not an integer", vals["MAX_RETRIES"])
	}
	if retries < 0 {
		return fmt.Errorf("MAX_RETRIES must be non-negative")
	}

	for _, key := range []string{"ADDRESS_MATCH_THRESHOLD", "PRICE_CORRELATION_THRESHOLD"} {
		threshold, err := strconv.ParseFloat(vals[key], 64)
		if err != nil {
			return fmt.Errorf("%s %q is not a number", key, vals[key])
		}
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}

	if !validLogLevel(vals["LOG_LEVEL"]) {
		return fmt.Errorf("LOG_LEVEL %q must be one of DEBUG, INFO, WARNING, ERROR", vals["LOG_LEVEL"])
	}
	return nil
}
