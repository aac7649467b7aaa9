// Package config provides local-first configuration for vitrine.
//
// Settings live in the project's .vitrine/ directory:
//
//	.vitrine/
//	├── config.json        # Main configuration
//	├── .gitignore         # Keeps logs out of git
//	└── vitrine.log        # Default log file
//
// config.json:
//
//	{
//	  "api_url": "http://localhost:3001",
//	  "filter_delay_ms": 500,
//	  "theme": "vitrine",
//	  "debug": false,
//	  "log_file": "vitrine.log"
//	}
//
// Values may reference environment variables with $VAR or ${VAR}. A .env file in
// the project directory is loaded before expansion, and VITRINE_API_URL always
// wins over api_url. Command line flags are applied by the caller on top.
//
// Example usage:
//
//	manager := config.NewManager(".")
//	if err := manager.Load(); err != nil {
//		return err
//	}
//	cfg := manager.Get()
//	client := api.NewClient(cfg.APIURL)
package config
