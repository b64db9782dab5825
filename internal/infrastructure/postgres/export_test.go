package postgres

// MigrateFS expone migrate para probar con scripts en memoria.
var MigrateFS = migrate
