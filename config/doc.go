// Package config loads layered configuration into a caller-supplied struct.
//
// Values come, lowest precedence first, from a YAML file and the process
// environment. A .env file is loaded into the environment only when one is
// named with WithEnvFile. Only variables carrying the program prefix are
// bound: for "ghusers", GHUSERS_GITHUB_PER_PAGE sets github.per_page and
// GHUSERS_ENVIRONMENT sets environment. Unprefixed variables such as
// GITHUB_TOKEN are bound with WithEnvAlias. Command-line flags are applied by
// the caller after loading.
//
//	var cfg cli.Config
//	err := config.LoadConfig("ghusers", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithEnvAlias("github.token", "GITHUB_TOKEN"))
package config
