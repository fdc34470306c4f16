package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому хранится *gorm.DB в gin.Context
	DBContextKey = contextKey("db")

	// IdentityKey - проверенная личность (*auth.Identity) после AuthMiddleware
	IdentityKey = contextKey("identity")
)
