package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/devtool"
	"github.com/reoring/goform/rule"
)

// User represents a user in our system
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
	Active   bool   `json:"active"`
}

// UserStore is a simple in-memory store
type UserStore struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[int]User),
		nextID: 1,
	}
}

func (s *UserStore) Create(user User) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user

	return user
}

func (s *UserStore) GetAll() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users
}

func (s *UserStore) GetByID(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	return user, exists
}

func (s *UserStore) Update(id int, user User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return false
	}

	user.ID = id
	s.users[id] = user
	return true
}

func (s *UserStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return false
	}

	delete(s.users, id)
	return true
}

// UsernameOwner reports which user currently holds name.
func (s *UserStore) UsernameOwner(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, user := range s.users {
		if user.Username == name {
			return id, true
		}
	}
	return 0, false
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// uniqueUsername checks the store injected through the context. Editing your
// own record keeps your own name valid.
func uniqueUsername(ctx context.Context, value any, values goform.Values) (string, error) {
	store, err := goform.RequireService[*UserStore](ctx)
	if err != nil {
		return "", err
	}
	name, _ := value.(string)
	owner, taken := store.UsernameOwner(name)
	if !taken {
		return "", nil
	}
	if id, ok := values.At("id"); ok && toInt(id) == owner {
		return "", nil
	}
	return "username already taken", nil
}

// Server holds our application state
type Server struct {
	store *UserStore
	obs   goform.Observer
}

func NewServer() *Server {
	return &Server{
		store: NewUserStore(),
		obs: devtool.NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})),
	}
}

// buildForm assembles the signup form over initial values. Create starts from
// a blank record, patch starts from the stored one.
func (s *Server) buildForm(initial goform.Values) *goform.Form {
	f := goform.New(
		goform.WithInitialValue(initial),
		goform.WithObserver(s.obs),
	)
	f.Register("username", goform.WithValidators(
		rule.Required(),
		rule.MinLength(3),
		rule.MaxLength(20),
		uniqueUsername,
	))
	f.Register("email", goform.WithValidators(
		rule.Required(),
		rule.Match(emailRe),
	))
	f.Register("age", goform.WithValidators(
		rule.Min(13),
		rule.Max(120),
	))
	return f
}

// validateDocument runs doc through a fresh form over initial and returns the
// final snapshot or the error bundle.
func (s *Server) validateDocument(ctx context.Context, initial goform.Values, doc goform.Values) (goform.Values, goform.Errors) {
	ctx = goform.WithService(ctx, s.store)
	form := s.buildForm(initial)
	form.SetValues(ctx, doc)

	var values goform.Values
	var errs goform.Errors
	form.HandleSubmit(
		func(_ context.Context, v goform.Values) { values = v },
		func(_ context.Context, e goform.Errors) { errs = e },
	)(ctx, nil)
	return values, errs
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetUsers(w, r)
	case http.MethodPost:
		s.handleCreateUser(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/users/")
	id, err := strconv.Atoi(path)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetUser(w, r, id)
	case http.MethodPatch:
		s.handlePatchUser(w, r, id)
	case http.MethodDelete:
		s.handleDeleteUser(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGetUsers(w http.ResponseWriter, _ *http.Request) {
	users := s.store.GetAll()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, _ *http.Request, id int) {
	user, exists := s.store.GetByID(id)
	if !exists {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	delete(doc, "id") // the server assigns IDs

	// Blank record with the server-side defaults.
	values, errs := s.validateDocument(r.Context(), goform.Values{
		"username": "",
		"email":    "",
		"age":      18,
		"active":   true,
	}, doc)
	if len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	created := s.store.Create(userFromValues(values))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (s *Server) handlePatchUser(w http.ResponseWriter, r *http.Request, id int) {
	existing, exists := s.store.GetByID(id)
	if !exists {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	delete(doc, "id")

	// The stored record is the initial value; the patch writes only the
	// leaves it carries, so absent fields keep their current values.
	values, errs := s.validateDocument(r.Context(), valuesOfUser(existing), doc)
	if len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	updated := userFromValues(values)
	s.store.Update(id, updated)
	updated.ID = id

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":           updated,
		"updated_fields": patchedFields(doc),
	})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, _ *http.Request, id int) {
	if !s.store.Delete(id) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (goform.Values, bool) {
	defer r.Body.Close()
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return nil, false
	}
	doc, err := goform.ValuesFromJSON(raw)
	if err != nil {
		http.Error(w, "Request body must be a JSON object", http.StatusBadRequest)
		return nil, false
	}
	return doc, true
}

func (s *Server) writeValidationError(w http.ResponseWriter, errs goform.Errors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "Validation failed",
		"fields": map[string]string(errs),
	})
}

func valuesOfUser(u User) goform.Values {
	return goform.Values{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"age":      u.Age,
		"active":   u.Active,
	}
}

func userFromValues(v goform.Values) User {
	var u User
	if x, ok := v.At("username"); ok {
		u.Username, _ = x.(string)
	}
	if x, ok := v.At("email"); ok {
		u.Email, _ = x.(string)
	}
	if x, ok := v.At("age"); ok {
		u.Age = toInt(x)
	}
	if x, ok := v.At("active"); ok {
		u.Active, _ = x.(bool)
	}
	return u
}

// toInt widens the numeric shapes a value graph can hold: ints from seeded
// structs, float64 from decoded JSON.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func patchedFields(doc goform.Values) []string {
	fields := make([]string, 0, len(doc))
	for k := range doc {
		fields = append(fields, k)
	}
	return fields
}

func main() {
	server := NewServer()

	// Add some initial data
	server.store.Create(User{Username: "taro", Email: "taro@example.com", Age: 30, Active: true})
	server.store.Create(User{Username: "hanako", Email: "hanako@example.com", Age: 25, Active: true})

	// Setup routes
	http.HandleFunc("/users", server.handleUsers)
	http.HandleFunc("/users/", server.handleUserByID)

	// Health check
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Root handler with usage instructions
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "goform Signup API Sample",
			"endpoints": map[string]string{
				"GET /users":         "Get all users",
				"POST /users":        "Create a new user",
				"GET /users/{id}":    "Get user by ID",
				"PATCH /users/{id}":  "Partially update user",
				"DELETE /users/{id}": "Delete user",
				"GET /health":        "Health check",
			},
			"examples": map[string]interface{}{
				"create_user": map[string]interface{}{
					"method": "POST",
					"url":    "/users",
					"body": map[string]interface{}{
						"username": "taro2",
						"email":    "taro2@example.com",
						"age":      30,
						"active":   true,
					},
				},
				"partial_update": map[string]interface{}{
					"method": "PATCH",
					"url":    "/users/1",
					"body": map[string]interface{}{
						"email": "new-taro@example.com",
					},
					"note": "Only the fields present in the body are written; the rest keep their stored values",
				},
			},
		})
	})

	log.Println("🚀 goform Signup API server starting on :8080")
	log.Println("📖 Visit http://localhost:8080 for usage instructions")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
