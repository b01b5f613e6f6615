// Package config loads wonderland settings.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//  1. built-in defaults (tab_size = 2, preserve_marker = "￥")
//  2. a settings file, TOML or YAML by extension
//  3. WONDERLAND_* environment variables
//
// A settings file looks like:
//
//	tab_size = 4
//	preserve_marker = "!keep"
//	plugin_dir = "~/.config/wonderland/lua"
//
//	[languages.python]
//	line_comment = "#"
//
//	[languages.rust]
//	decl_keywords = ["let", "let mut"]
//
// Config holds the current Settings and can reload them when the file
// changes on disk:
//
//	cfg, err := config.Open("settings.toml")
//	if err != nil {
//	    return err
//	}
//	defer cfg.Close()
//	if err := cfg.Watch(); err != nil {
//	    return err
//	}
//	tab := cfg.Settings().TabSize
package config
