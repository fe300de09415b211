// Package models defines the component configuration schemas.
//
// Each component lives in its own file named {component}_model.go and
// declares a {Component}Config struct. Json tags carry the external key
// names used in the data files, including dotted aliases such as
// "timestamp.color". Fields without omitempty are required.
//
// The package sources double as the default schema-module directory:
// Sources embeds this directory so discovery can scan it exactly as it
// would scan a directory on disk. doc.go and base_config.go are not
// components.
//
// # Adding a component
//
//  1. Create lidar_model.go with a LidarConfig struct.
//  2. Add a lidarModule constructor and list it in builtins (register.go).
//  3. Drop lidar.json into the data directory.
package models
