package dataaccess

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB is the Mongo client. This is a connection pool. It is nil when no
// Mongo URI was configured, in which case the in-memory stores are used.
var MongoDB *mongo.Client

const mongoDatabase = "hound"
