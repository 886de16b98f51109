package resource

import (
	"context"

	"sticky/internal/cache"
	"sticky/internal/domain/user"
	"sticky/internal/model"
)

// Users - кэшируемые эндпоинты пользователей
type Users struct {
	List    *cache.Query[None, []user.User]
	ByID    *cache.Query[model.ID, user.User]
	ByEmail *cache.Query[string, user.User]

	Create *cache.Mutation[user.User, user.User]
	Update *cache.Mutation[user.UpdateRequest, user.User]
	Delete *cache.Mutation[model.ID, None]
}

func NewUsers(c *cache.Cache, b UsersBackend) *Users {
	provides := []string{TagUsers}
	invalidates := cache.MutationOptions{Invalidates: []string{TagUsers}}

	return &Users{
		List: cache.NewQuery(c, "getUsers",
			func(ctx context.Context, _ None) ([]user.User, error) {
				return b.ListUsers(ctx)
			},
			cache.QueryOptions[None]{Key: noneKey, Provides: provides},
		),
		ByID: cache.NewQuery(c, "getUserId",
			func(ctx context.Context, id model.ID) (user.User, error) {
				return b.GetUser(ctx, id)
			},
			cache.QueryOptions[model.ID]{Key: model.ID.String, Provides: provides},
		),
		ByEmail: cache.NewQuery(c, "getUserByEmail",
			func(ctx context.Context, email string) (user.User, error) {
				return b.GetUserByEmail(ctx, email)
			},
			cache.QueryOptions[string]{Provides: provides},
		),
		Create: cache.NewMutation(c, "createUser", b.CreateUser, invalidates),
		Update: cache.NewMutation(c, "updateUser", b.UpdateUser, invalidates),
		Delete: cache.NewMutation(c, "deleteUser",
			func(ctx context.Context, id model.ID) (None, error) {
				return None{}, b.DeleteUser(ctx, id)
			},
			invalidates,
		),
	}
}
