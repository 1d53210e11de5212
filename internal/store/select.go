package store

// Select is the backend decision function, evaluated once per process
// lifetime from main.  Production deployments use the networked MySQL
// backend; everything else runs on the embedded SQLite file.  Setting
// DB_BACKEND=mysql lets developers test against the networked backend
// without flipping APP_ENV.  Switching backends mid-process is unsupported
// (the booking core's transaction strategy depends on the decision), so the
// result must be stored once and never re-evaluated.
func Select(env, override string) Backend {
	if env == "prod" || env == "production" {
		return MySQL
	}
	if override == "mysql" {
		return MySQL
	}
	return SQLite
}
