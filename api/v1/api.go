package v1

import (
	"net/http"
	"os"

	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/middleware"
	"github.com/bookwell/bookwell/storage"
	"github.com/bookwell/bookwell/store"
	"github.com/bookwell/bookwell/worker"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	store      *store.Store
	uploadPool *worker.UploadPool
	storage    *storage.LocalStorage
	router     *mux.Router
}

func Server(router *mux.Router, store *store.Store, uploadPool *worker.UploadPool) {
	handler := &Handler{
		store:      store,
		uploadPool: uploadPool,
		storage:    storage.NewLocalStorage(),
		router:     router,
	}

	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)

	sSetting, err := store.GetOrUpsetSystemSecuritySetting()
	if err != nil {
		log.Logger.Error("Error getting security setting", zap.Error(err))
		os.Exit(1)
	}
	jwtSecret := sSetting.JWTSecret
	sr.Use(NewAuthInterceptor(store, jwtSecret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/signup", handler.signUp).Methods(http.MethodPost)
	sr.HandleFunc("/signin", handler.signIn).Methods(http.MethodPost)
	sr.HandleFunc("/settings/general", handler.setGeneralSettings).Methods(http.MethodPost)

	sr.HandleFunc("/users", handler.listUsers).Methods(http.MethodGet)
	sr.HandleFunc("/users/{id:[0-9]+}", handler.updateUser).Methods(http.MethodPatch)
	sr.HandleFunc("/users/me", handler.getMyProfile).Methods(http.MethodGet)
	sr.HandleFunc("/users/me", handler.updateMyProfile).Methods(http.MethodPatch)
	sr.HandleFunc("/users/me/password", handler.changePassword).Methods(http.MethodPost)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.uploadBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id}/cover", handler.getCover).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/pages/{pageNumber}", handler.getPage).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/text", handler.getBookText).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/export", handler.exportBook).Methods(http.MethodGet)

	sr.HandleFunc("/books/{id}/progress", handler.getProgress).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/progress", handler.saveProgress).Methods(http.MethodPatch, http.MethodPost)
	sr.HandleFunc("/books/{id}/bookmarks/{pageNumber:[0-9]+}", handler.addPageBookmark).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}/bookmarks/{pageNumber:[0-9]+}", handler.removePageBookmark).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id}/bookmarks/locations", handler.addLocationBookmark).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}/bookmarks/locations", handler.removeLocationBookmark).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id}/favorite", handler.toggleFavorite).Methods(http.MethodPost)
	sr.HandleFunc("/favorites", handler.listFavoriteBooks).Methods(http.MethodGet)

	sr.HandleFunc("/books/{id}/reviews", handler.listReviews).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/reviews/me", handler.getMyReview).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/reviews", handler.upsertReview).Methods(http.MethodPost, http.MethodPut)

	sr.HandleFunc("/books/{id}/lines", handler.listFavoriteLines).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/lines", handler.addFavoriteLine).Methods(http.MethodPost)
	sr.HandleFunc("/lines", handler.listMyFavoriteLines).Methods(http.MethodGet)
	sr.HandleFunc("/lines/{id}", handler.deleteFavoriteLine).Methods(http.MethodDelete)
}
