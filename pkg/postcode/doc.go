// Package postcode resolves Japanese postal codes to prefecture, city and town.
//
// Directory is the lookup contract. Zipcloud talks to the public zipcloud API;
// Static serves a YAML fixture. MemoryCache and RedisCache wrap any Directory
// and cache both hits and not-found answers, never failures.
//
//	dir, err := postcode.New(cfg, redisClient, log)
//	rec, err := dir.Lookup(ctx, postcode.Normalize("100-0001"))
//	switch {
//	case errors.Is(err, postcode.ErrNotFound):
//		// the code does not exist
//	case err != nil:
//		// the directory could not answer
//	}
package postcode
