// Package config provides configuration parsing for hyper projects.
//
// The configuration is stored in hyper.json at the project root. Every
// field is optional; command-line flags override what the file sets.
//
// # Configuration File Structure
//
//	{
//	  "render": {
//	    "pretty": true,
//	    "indent": "  "
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "metrics": "/metrics",
//	    "tracing": false
//	  },
//	  "publish": {
//	    "dir": "public",
//	    "bucket": "my-site",
//	    "prefix": "www/",
//	    "region": "eu-west-1"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
