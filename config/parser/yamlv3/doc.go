// Package yamlv3 is an alternate config.Parser built on gopkg.in/yaml.v3.
//
// It walks yaml.Node trees directly, which keeps mapping order, resolves
// aliases and merge keys, and reports duplicate keys with their line.
package yamlv3
