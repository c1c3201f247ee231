/*
Package config loads observability settings for delegates from YAML or JSON.

# File Format

	name: orders      # delegate name used in logs, metrics and spans
	logging: true
	log_level: debug  # debug, info, warn or error
	metrics: true
	tracing: false

Missing keys keep the values from Default.

# Loading

	cfg, err := config.FromFile("delegate.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)

All loaders validate the result. Errors wrap ErrUnsupportedFormat or
ErrInvalidLogLevel where applicable and can be checked with errors.Is.
*/
package config
