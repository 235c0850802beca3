// Seeds a running social-service instance with fake users, follows, posts,
// likes and comments through the public HTTP API.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

type seededUser struct {
	UserID   string
	Username string
	Token    string
}

var (
	baseURL = flag.String("base-url", "http://localhost:8080", "service base URL")
	users   = flag.Int("users", 10, "number of users to create")
	posts   = flag.Int("posts", 3, "posts per user")
)

func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	seeded := make([]seededUser, 0, *users)
	for i := 0; i < *users; i++ {
		u, err := signupAndLogin()
		if err != nil {
			log.Fatalf("seed user: %v", err)
		}
		seeded = append(seeded, u)
	}
	log.Printf("created %d users", len(seeded))

	for _, u := range seeded {
		for _, target := range pick(seeded, 3) {
			if target.UserID == u.UserID {
				continue
			}
			post(u.Token, "/social/follow/"+target.UserID, nil)
		}
	}

	postIDs := make([]string, 0, len(seeded)*(*posts))
	for _, u := range seeded {
		for i := 0; i < *posts; i++ {
			id, err := createPost(u.Token)
			if err != nil {
				log.Fatalf("seed post: %v", err)
			}
			postIDs = append(postIDs, id)
		}
	}
	log.Printf("created %d posts", len(postIDs))

	for _, u := range seeded {
		for _, pid := range pickStrings(postIDs, 5) {
			post(u.Token, "/posts/"+pid+"/like", nil)
		}
		for _, pid := range pickStrings(postIDs, 2) {
			post(u.Token, "/posts/"+pid+"/comment", map[string]string{
				"content": gofakeit.Sentence(8),
			})
		}
	}
	log.Print("done")
}

func signupAndLogin() (seededUser, error) {
	email := gofakeit.Email()
	password := "password123"
	username := strings.ToLower(gofakeit.Username())

	signup := map[string]string{
		"email":     email,
		"username":  username,
		"password":  password,
		"full_name": gofakeit.Name(),
		"bio":       gofakeit.Sentence(6),
	}
	var profile struct {
		UserID string `json:"user_id"`
	}
	if err := request(http.MethodPost, "/auth/signup", "", signup, &profile); err != nil {
		return seededUser{}, err
	}

	login := map[string]string{"email": email, "password": password}
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := request(http.MethodPost, "/auth/login", "", login, &tokens); err != nil {
		return seededUser{}, err
	}
	return seededUser{UserID: profile.UserID, Username: username, Token: tokens.AccessToken}, nil
}

func createPost(token string) (string, error) {
	body := map[string]string{"content": gofakeit.Sentence(12)}
	var created struct {
		PostID string `json:"post_id"`
	}
	if err := request(http.MethodPost, "/posts/", token, body, &created); err != nil {
		return "", err
	}
	return created.PostID, nil
}

func post(token, path string, body any) {
	if err := request(http.MethodPost, path, token, body, nil); err != nil {
		log.Printf("POST %s: %v", path, err)
	}
}

func request(method, path, token string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, *baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func pick(from []seededUser, n int) []seededUser {
	out := make([]seededUser, 0, n)
	for i := 0; i < n && len(from) > 0; i++ {
		out = append(out, from[rand.Intn(len(from))])
	}
	return out
}

func pickStrings(from []string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n && len(from) > 0; i++ {
		out = append(out, from[rand.Intn(len(from))])
	}
	return out
}
