package commands

// VERSION is reported by --version in the format v<major>.<minor>.<build> e.g. v0.1.0
const VERSION = "v0.1.0"
