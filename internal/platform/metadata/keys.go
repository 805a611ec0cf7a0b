package metadata

// --- SQLite Keys ---
// These keys are used for the 'key' column in the 'metadata' SQLite table.
const (
	// SchemaVersionKey stores the version number of the last applied schema
	// migration. Migrations with a higher version are applied at startup.
	SchemaVersionKey = "schema_version"
)
