// Package utils is the public facade over the module's internal packages: the
// layered environment store, project root discovery, number formatting and a
// shared logger.
//
// The store is constructed explicitly; applications that want one shared
// instance keep it themselves:
//
//	var env = utils.DiscoverKEV()
//
//	func main() {
//		dsn := env.MustGet("DATABASE_URL")
//		port := env.Int("PORT", 8080)
//		utils.Log().Info("starting", "port", port, "dsn_source", env.SourceOf("DATABASE_URL"))
//		_ = dsn
//	}
package utils
