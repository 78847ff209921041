package config

import "fmt"

// ExtensionCase is one extension verification case: a name plus the
// SQL used to create and exercise it. Statement variants (such as an
// extension that cannot be created with CASCADE) are expressed as
// per-case overrides in data, never as control flow.
type ExtensionCase struct {
	// Name is the extension name as known to pg_extension.
	Name string `yaml:"name"`

	// Create overrides the create statement. Default:
	// CREATE EXTENSION IF NOT EXISTS "<name>" CASCADE
	Create string `yaml:"create,omitempty"`

	// Check overrides the verification query. Default reads the
	// installed version from pg_extension.
	Check string `yaml:"check,omitempty"`
}

// SQL returns the combined create-and-verify batch for this case.
func (c ExtensionCase) SQL() string {
	create := c.Create
	if create == "" {
		create = fmt.Sprintf("CREATE EXTENSION IF NOT EXISTS %q CASCADE", c.Name)
	}
	check := c.Check
	if check == "" {
		check = fmt.Sprintf("SELECT extversion FROM pg_extension WHERE extname = '%s'", c.Name)
	}
	return create + "; " + check + ";"
}

// DefaultExtensions is the built-in verification list. Each check is a
// functional query, not just a catalog lookup, so a broken install
// fails even when CREATE EXTENSION succeeded.
func DefaultExtensions() []ExtensionCase {
	return []ExtensionCase{
		// pgvector refuses CASCADE, so its create form is overridden.
		{
			Name:   "vector",
			Create: `CREATE EXTENSION IF NOT EXISTS vector`,
			Check:  `SELECT '[1,2,3]'::vector <-> '[3,2,1]'::vector`,
		},
		{Name: "postgis", Check: `SELECT PostGIS_Full_Version()`},
		{Name: "pg_trgm", Check: `SELECT similarity('stevedore', 'stevedores')`},
		{Name: "hstore", Check: `SELECT 'a=>1,b=>2'::hstore -> 'b'`},
		{Name: "uuid-ossp", Check: `SELECT uuid_generate_v4()`},
		{Name: "pgcrypto", Check: `SELECT encode(digest('stevedore', 'sha256'), 'hex')`},
		{Name: "citext", Check: `SELECT 'Stevedore'::citext = 'stevedore'::citext`},
		{Name: "pg_stat_statements"},
	}
}
