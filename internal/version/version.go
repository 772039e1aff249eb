package version

const Value = "0.4.0"
