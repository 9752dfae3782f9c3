package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/nvallin/folio/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// public read surface
	router.HandlerFunc(http.MethodGet, "/v1/posts", app.listPublishedPostsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/posts/:slug", app.getPublishedPostHandler)

	// admin accounts
	router.HandlerFunc(http.MethodPost, "/v1/users/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/activate", app.activateUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/login", app.rateLimit(app.loginUserHandler))
	router.HandlerFunc(http.MethodPost, "/v1/users/logout", app.requireAuthUser(app.logoutUserHandler))

	// admin post surface, every route verifies the session server-side
	router.HandlerFunc(http.MethodGet, "/v1/admin/posts", app.requirePermission(app.listPostsHandler, userservice.PermissionWritePosts))
	router.HandlerFunc(http.MethodPost, "/v1/admin/posts", app.requirePermission(app.createPostHandler, userservice.PermissionWritePosts))
	router.HandlerFunc(http.MethodGet, "/v1/admin/posts/:id", app.requirePermission(app.getPostHandler, userservice.PermissionWritePosts))
	router.HandlerFunc(http.MethodPut, "/v1/admin/posts/:id", app.requirePermission(app.updatePostHandler, userservice.PermissionWritePosts))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/posts/:id", app.requirePermission(app.deletePostHandler, userservice.PermissionWritePosts))
	router.HandlerFunc(http.MethodPost, "/v1/admin/media", app.requirePermission(app.uploadMediaHandler, userservice.PermissionWritePosts))

	return app.recoverPanic(app.logRequest(app.sessionGate(app.authenticate(router))))
}
