// Command kev reads and writes layered environment variables from the
// process environment and dotenv files.
//
//	kev get DATABASE_URL
//	kev get .env.local:API_KEY --with-source
//	kev set .env:PORT 8080
//	kev dump 'API_*' --table
package main
