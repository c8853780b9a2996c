package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/db"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/matching"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/notify"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/service"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/store"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/verify"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	db     *sql.DB
	server *httptest.Server
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	database := db.NewTestDB(t)
	svc := service.New(database,
		matching.NewEngine(database, matching.NewScorer()),
		verify.New(nil),
		notify.NewDispatcher(notify.NewStoreSink(database)),
	)
	server := httptest.NewServer(NewRouter(database, testJWTSecret, svc))
	t.Cleanup(server.Close)
	return &testEnv{db: database, server: server}
}

// user creates an account directly in the store and logs it in.
func (e *testEnv) user(t *testing.T, username, role string) (int64, string) {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	u, err := store.CreateUser(context.Background(), e.db, model.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     username + " tester",
		Email:        username + "@uni.example",
		Phone:        "0123456789",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	var login loginResponse
	status := e.do(t, "POST", "/api/auth/login", "", map[string]string{
		"username": username, "password": "password",
	}, &login)
	if status != http.StatusOK || login.Token == "" {
		t.Fatalf("login failed: %d", status)
	}
	return u.ID, login.Token
}

// do sends a JSON request and decodes the JSON response into out when given.
func (e *testEnv) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

const phoneDescription = "Black iPhone 13 with a blue silicone case and a scratch near the camera"

func phoneReport() map[string]string {
	return map[string]string{
		"category":    "electronics",
		"item_name":   "Phone",
		"color":       "Black",
		"location":    "Library",
		"date":        "2024-03-01",
		"description": phoneDescription,
	}
}

func TestLoginEndpoint(t *testing.T) {
	e := setupTestServer(t)
	e.user(t, "admin", model.RoleAdmin)

	status := e.do(t, "POST", "/api/auth/login", "", map[string]string{"username": "admin", "password": "wrong"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", status)
	}
	status = e.do(t, "POST", "/api/auth/login", "", map[string]string{"username": "ghost", "password": "password"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown user, got %d", status)
	}
}

func TestRegisterAndLogout(t *testing.T) {
	e := setupTestServer(t)

	reg := map[string]string{
		"username":  "jdoe",
		"password":  "longenough",
		"full_name": "Jane Doe",
		"email":     "jane@uni.example",
	}
	var out loginResponse
	if status := e.do(t, "POST", "/api/auth/register", "", reg, &out); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if out.User == nil || out.User.Role != model.RoleUser {
		t.Fatalf("expected user role, got %+v", out.User)
	}

	if status := e.do(t, "POST", "/api/auth/register", "", reg, nil); status != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", status)
	}
	reg["username"], reg["password"] = "short", "abc"
	if status := e.do(t, "POST", "/api/auth/register", "", reg, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for weak password, got %d", status)
	}

	if status := e.do(t, "GET", "/api/lost-items", out.Token, nil, nil); status != http.StatusOK {
		t.Fatalf("expected 200 with fresh token, got %d", status)
	}
	if status := e.do(t, "POST", "/api/auth/logout", out.Token, nil, nil); status != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", status)
	}
	if status := e.do(t, "GET", "/api/lost-items", out.Token, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", status)
	}
}

func TestChangePassword(t *testing.T) {
	e := setupTestServer(t)
	_, token := e.user(t, "jdoe", model.RoleUser)

	status := e.do(t, "PUT", "/api/auth/password", token, changePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong current password, got %d", status)
	}
	status = e.do(t, "PUT", "/api/auth/password", token, changePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"}, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	status = e.do(t, "POST", "/api/auth/login", "", map[string]string{"username": "jdoe", "password": "new-password"}, nil)
	if status != http.StatusOK {
		t.Errorf("expected login with new password, got %d", status)
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	e := setupTestServer(t)

	for _, path := range []string{"/api/matches", "/api/lost-items", "/api/notifications"} {
		if status := e.do(t, "GET", path, "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, status)
		}
	}
	if status := e.do(t, "GET", "/api/matches", "garbage", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid token, got %d", status)
	}
}

func TestRoleBasedAccess(t *testing.T) {
	e := setupTestServer(t)
	_, adminToken := e.user(t, "admin", model.RoleAdmin)
	userID, userToken := e.user(t, "user1", model.RoleUser)

	if status := e.do(t, "GET", "/api/users", userToken, nil, nil); status != http.StatusForbidden {
		t.Errorf("expected 403 for user listing users, got %d", status)
	}
	if status := e.do(t, "POST", "/api/admin/rematch", userToken, nil, nil); status != http.StatusForbidden {
		t.Errorf("expected 403 for user rematching, got %d", status)
	}

	var users []model.User
	if status := e.do(t, "GET", "/api/users", adminToken, nil, &users); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}

	path := "/api/users/" + itoa(userID)
	if status := e.do(t, "DELETE", path, adminToken, nil, nil); status != http.StatusOK {
		t.Errorf("expected 200 deleting user, got %d", status)
	}
	if status := e.do(t, "DELETE", path, adminToken, nil, nil); status != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", status)
	}
}

func TestOptions(t *testing.T) {
	e := setupTestServer(t)

	var opts optionsResponse
	if status := e.do(t, "GET", "/api/options", "", nil, &opts); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(opts.Categories) == 0 || len(opts.Colors) == 0 || len(opts.Locations) == 0 {
		t.Errorf("expected populated vocabularies, got %+v", opts)
	}
}

func TestReportValidation(t *testing.T) {
	e := setupTestServer(t)
	_, token := e.user(t, "jdoe", model.RoleUser)

	tests := []struct {
		name  string
		field string
		value string
	}{
		{"missing description", "description", ""},
		{"unknown category", "category", "Vehicles"},
		{"bad date", "date", "01/03/2024"},
		{"future date", "date", "2999-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := phoneReport()
			body[tt.field] = tt.value
			if status := e.do(t, "POST", "/api/lost-items", token, body, nil); status != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", status)
			}
		})
	}
}

type itemResponse struct {
	Item struct {
		ID          int64  `json:"id"`
		ReferenceID string `json:"reference_id"`
		Category    string `json:"category"`
		Status      string `json:"status"`
	} `json:"item"`
	Matches []matching.Candidate `json:"matches"`
}

func TestMatchAndVerifyFlow(t *testing.T) {
	e := setupTestServer(t)
	_, finderToken := e.user(t, "finder", model.RoleUser)
	_, ownerToken := e.user(t, "owner", model.RoleUser)

	var found itemResponse
	if status := e.do(t, "POST", "/api/found-items", finderToken, phoneReport(), &found); status != http.StatusCreated {
		t.Fatalf("expected 201 for found item, got %d", status)
	}
	if found.Item.Category != "Electronics" {
		t.Errorf("expected canonical category, got %q", found.Item.Category)
	}

	var lost itemResponse
	if status := e.do(t, "POST", "/api/lost-items", ownerToken, phoneReport(), &lost); status != http.StatusCreated {
		t.Fatalf("expected 201 for lost item, got %d", status)
	}
	if len(lost.Matches) != 1 || lost.Matches[0].Score < 90 {
		t.Fatalf("expected one strong match, got %+v", lost.Matches)
	}
	matchPath := "/api/matches/" + itoa(lost.Matches[0].MatchID)

	if status := e.do(t, "GET", "/api/lost-items/"+itoa(lost.Item.ID), finderToken, nil, nil); status != http.StatusNotFound {
		t.Errorf("expected finder not to see the lost report, got %d", status)
	}

	var notes []model.Notification
	e.do(t, "GET", "/api/notifications?unread=1", ownerToken, nil, &notes)
	if len(notes) != 1 || notes[0].Type != model.NotifyMatchFound {
		t.Fatalf("expected one match_found notification, got %+v", notes)
	}
	if status := e.do(t, "POST", "/api/notifications/"+itoa(notes[0].ID)+"/read", finderToken, nil, nil); status != http.StatusNotFound {
		t.Errorf("expected 404 marking someone else's notification, got %d", status)
	}
	if status := e.do(t, "POST", "/api/notifications/"+itoa(notes[0].ID)+"/read", ownerToken, nil, nil); status != http.StatusOK {
		t.Errorf("expected 200 marking read, got %d", status)
	}

	if status := e.do(t, "GET", matchPath+"/questions", finderToken, nil, nil); status != http.StatusForbidden {
		t.Errorf("expected 403 for finder questions, got %d", status)
	}
	var qs struct {
		Questions []string `json:"questions"`
	}
	if status := e.do(t, "GET", matchPath+"/questions", ownerToken, nil, &qs); status != http.StatusOK {
		t.Fatalf("expected 200 for questions, got %d", status)
	}
	if len(qs.Questions) == 0 {
		t.Fatal("expected questions")
	}

	if status := e.do(t, "POST", matchPath+"/answers", ownerToken, answersRequest{Answers: []string{" ", ""}}, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for blank answers, got %d", status)
	}

	var out struct {
		Match   model.Match        `json:"match"`
		Contact *model.ContactInfo `json:"contact"`
	}
	answers := answersRequest{Answers: []string{
		"black phone, blue silicone case",
		"blue silicone case",
		"a scratch near the camera",
		"near the iphone camera",
		"iphone 13 black",
	}}
	if status := e.do(t, "POST", matchPath+"/answers", ownerToken, answers, &out); status != http.StatusOK {
		t.Fatalf("expected 200 for answers, got %d", status)
	}
	if out.Match.Status != model.MatchStatusVerified || out.Contact == nil || out.Contact.Email != "finder@uni.example" {
		t.Fatalf("expected verified match with finder contact, got %q %+v", out.Match.Status, out.Contact)
	}

	var view service.MatchDetail
	e.do(t, "GET", matchPath, finderToken, nil, &view)
	if view.Contact == nil || view.Contact.Email != "owner@uni.example" {
		t.Errorf("expected finder to see owner contact, got %+v", view.Contact)
	}
	if len(view.Match.Answers) != 0 {
		t.Error("finder should not see the owner's answers")
	}

	var returned model.Match
	if status := e.do(t, "POST", matchPath+"/return", ownerToken, nil, &returned); status != http.StatusOK {
		t.Fatalf("expected 200 for return, got %d", status)
	}
	if returned.Status != model.MatchStatusReturnedToOwner {
		t.Errorf("expected returned_to_owner, got %q", returned.Status)
	}
	if status := e.do(t, "POST", matchPath+"/reject", finderToken, nil, nil); status != http.StatusConflict {
		t.Errorf("expected 409 rejecting a returned match, got %d", status)
	}

	var item model.LostItem
	e.do(t, "GET", "/api/lost-items/"+itoa(lost.Item.ID), ownerToken, nil, &item)
	if item.Status != model.LostStatusRecovered {
		t.Errorf("expected recovered lost item, got %q", item.Status)
	}
}

func TestUpdateAndCloseReports(t *testing.T) {
	e := setupTestServer(t)
	_, ownerToken := e.user(t, "owner", model.RoleUser)
	_, finderToken := e.user(t, "finder", model.RoleUser)
	_, adminToken := e.user(t, "admin", model.RoleAdmin)

	var lost itemResponse
	e.do(t, "POST", "/api/lost-items", ownerToken, phoneReport(), &lost)
	lostPath := "/api/lost-items/" + itoa(lost.Item.ID)

	if status := e.do(t, "PUT", lostPath, finderToken, map[string]string{"status": "closed"}, nil); status != http.StatusNotFound {
		t.Errorf("expected 404 for someone else's report, got %d", status)
	}
	if status := e.do(t, "PUT", lostPath, adminToken, map[string]string{"status": "closed"}, nil); status != http.StatusForbidden {
		t.Errorf("expected 403 for admin changing a report, got %d", status)
	}
	if status := e.do(t, "PUT", lostPath, ownerToken, map[string]string{"status": "recovered"}, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for a status other than closed, got %d", status)
	}

	edited := phoneReport()
	edited["item_name"], edited["brand"] = "iPhone 13", "Apple"
	var item model.LostItem
	if status := e.do(t, "PUT", lostPath, ownerToken, edited, &item); status != http.StatusOK {
		t.Fatalf("expected 200 editing report, got %d", status)
	}
	if item.ItemName != "iPhone 13" || item.Brand != "Apple" || item.Status != model.LostStatusSearching {
		t.Errorf("edit not applied: %+v", item)
	}

	edited["date"] = "2999-01-01"
	if status := e.do(t, "PUT", lostPath, ownerToken, edited, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for a future date, got %d", status)
	}

	if status := e.do(t, "PUT", lostPath, ownerToken, map[string]string{"status": "closed"}, &item); status != http.StatusOK {
		t.Fatalf("expected 200 closing report, got %d", status)
	}
	if item.Status != model.LostStatusClosed {
		t.Errorf("expected closed, got %q", item.Status)
	}
	if status := e.do(t, "PUT", lostPath, ownerToken, map[string]string{"status": "closed"}, nil); status != http.StatusConflict {
		t.Errorf("expected 409 closing twice, got %d", status)
	}
	if status := e.do(t, "PUT", lostPath, ownerToken, phoneReport(), nil); status != http.StatusConflict {
		t.Errorf("expected 409 editing a closed report, got %d", status)
	}

	// A closed lost report no longer attracts matches.
	var found itemResponse
	if status := e.do(t, "POST", "/api/found-items", finderToken, phoneReport(), &found); status != http.StatusCreated {
		t.Fatalf("expected 201 for found item, got %d", status)
	}
	if len(found.Matches) != 0 {
		t.Fatalf("expected no matches against a closed report, got %+v", found.Matches)
	}

	foundPath := "/api/found-items/" + itoa(found.Item.ID)
	var closedFound model.FoundItem
	if status := e.do(t, "PUT", foundPath, finderToken, map[string]string{"status": "closed"}, &closedFound); status != http.StatusOK {
		t.Fatalf("expected 200 closing found report, got %d", status)
	}
	if closedFound.Status != model.FoundStatusClosed {
		t.Errorf("expected closed found item, got %q", closedFound.Status)
	}

	var again itemResponse
	e.do(t, "POST", "/api/lost-items", ownerToken, phoneReport(), &again)
	if len(again.Matches) != 0 {
		t.Errorf("expected no matches against a closed found report, got %+v", again.Matches)
	}

	var closed []model.LostItem
	e.do(t, "GET", "/api/lost-items?status=closed", ownerToken, nil, &closed)
	if len(closed) != 1 || closed[0].ID != lost.Item.ID {
		t.Errorf("expected the one closed report, got %+v", closed)
	}
}

func TestProfileUpdateAndUnreadCount(t *testing.T) {
	e := setupTestServer(t)
	_, finderToken := e.user(t, "finder", model.RoleUser)
	_, ownerToken := e.user(t, "owner", model.RoleUser)

	for _, bad := range []map[string]string{
		{"full_name": "Finder", "email": "not-an-address"},
		{"full_name": "Finder", "email": "Finder <finder@uni.example>"},
		{"full_name": " ", "email": "finder@uni.example"},
	} {
		if status := e.do(t, "PUT", "/api/profile", finderToken, bad, nil); status != http.StatusBadRequest {
			t.Errorf("expected 400 for %v, got %d", bad, status)
		}
	}

	var me model.User
	update := map[string]string{
		"full_name":           "Kamal Silva",
		"email":               " kamal.silva@uni.example ",
		"phone":               "0719876543",
		"registration_number": "2021/CS/042",
	}
	if status := e.do(t, "PUT", "/api/profile", finderToken, update, &me); status != http.StatusOK {
		t.Fatalf("expected 200 updating profile, got %d", status)
	}
	if me.Email != "kamal.silva@uni.example" || me.Username != "finder" {
		t.Errorf("unexpected profile %+v", me)
	}
	e.do(t, "GET", "/api/profile", finderToken, nil, &me)
	if me.FullName != "Kamal Silva" || me.Phone != "0719876543" {
		t.Errorf("profile not persisted: %+v", me)
	}

	var found, lost itemResponse
	e.do(t, "POST", "/api/found-items", finderToken, phoneReport(), &found)
	e.do(t, "POST", "/api/lost-items", ownerToken, phoneReport(), &lost)
	if len(lost.Matches) != 1 {
		t.Fatalf("expected one match, got %+v", lost.Matches)
	}

	var count struct {
		Unread int `json:"unread"`
	}
	if status := e.do(t, "GET", "/api/notifications/unread-count", ownerToken, nil, &count); status != http.StatusOK {
		t.Fatalf("expected 200 for unread count, got %d", status)
	}
	if count.Unread != 1 {
		t.Errorf("expected 1 unread notification, got %d", count.Unread)
	}
	var notes []model.Notification
	e.do(t, "GET", "/api/notifications?unread=1", ownerToken, nil, &notes)
	e.do(t, "POST", "/api/notifications/"+itoa(notes[0].ID)+"/read", ownerToken, nil, nil)
	e.do(t, "GET", "/api/notifications/unread-count", ownerToken, nil, &count)
	if count.Unread != 0 {
		t.Errorf("expected 0 unread after marking read, got %d", count.Unread)
	}

	matchPath := "/api/matches/" + itoa(lost.Matches[0].MatchID)
	var qs struct {
		Questions []string `json:"questions"`
	}
	e.do(t, "GET", matchPath+"/questions", ownerToken, nil, &qs)
	var out struct {
		Match   model.Match        `json:"match"`
		Contact *model.ContactInfo `json:"contact"`
	}
	answers := answersRequest{Answers: []string{
		"black phone, blue silicone case",
		"blue silicone case",
		"a scratch near the camera",
		"near the iphone camera",
		"iphone 13 black",
	}}
	if status := e.do(t, "POST", matchPath+"/answers", ownerToken, answers, &out); status != http.StatusOK {
		t.Fatalf("expected 200 for answers, got %d", status)
	}
	if out.Contact == nil {
		t.Fatalf("expected released contact, got status %q", out.Match.Status)
	}
	want := model.ContactInfo{
		Name:               "Kamal Silva",
		Email:              "kamal.silva@uni.example",
		Phone:              "0719876543",
		RegistrationNumber: "2021/CS/042",
	}
	if *out.Contact != want {
		t.Errorf("expected updated contact %+v, got %+v", want, *out.Contact)
	}
}

func TestAdminForceMatch(t *testing.T) {
	e := setupTestServer(t)
	_, adminToken := e.user(t, "admin", model.RoleAdmin)
	_, userToken := e.user(t, "jdoe", model.RoleUser)

	var lost itemResponse
	e.do(t, "POST", "/api/lost-items", userToken, phoneReport(), &lost)
	other := phoneReport()
	other["category"], other["description"] = "Clothing", "red woollen scarf"
	var found itemResponse
	e.do(t, "POST", "/api/found-items", userToken, other, &found)

	req := forceMatchRequest{LostItemID: lost.Item.ID, FoundItemID: 9999}
	if status := e.do(t, "POST", "/api/admin/force-match", adminToken, req, nil); status != http.StatusNotFound {
		t.Errorf("expected 404 for missing found item, got %d", status)
	}

	req.FoundItemID = found.Item.ID
	var m model.Match
	if status := e.do(t, "POST", "/api/admin/force-match", adminToken, req, &m); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if !m.Forced || m.Status != model.MatchStatusPending {
		t.Errorf("unexpected forced match %+v", m)
	}

	var all []model.Match
	e.do(t, "GET", "/api/matches?all=1&status=pending_verification", adminToken, nil, &all)
	if len(all) != 1 {
		t.Errorf("expected admin to see 1 pending match, got %d", len(all))
	}
}

func TestItemImageUpload(t *testing.T) {
	e := setupTestServer(t)
	_, token := e.user(t, "jdoe", model.RoleUser)

	var lost itemResponse
	e.do(t, "POST", "/api/lost-items", token, phoneReport(), &lost)
	path := e.server.URL + "/api/lost-items/" + itoa(lost.Item.ID) + "/image"

	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	var pngData bytes.Buffer
	png.Encode(&pngData, img)

	upload := func(data []byte) int {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, _ := mw.CreateFormFile("image", "photo")
		part.Write(data)
		mw.Close()

		req, _ := http.NewRequest("PUT", path, &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if status := upload([]byte("plain text, not a picture")); status != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", status)
	}
	if status := upload(pngData.Bytes()); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	req, _ := http.NewRequest("GET", path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/jpeg" {
		t.Errorf("expected stored JPEG, got %d %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := setupTestServer(t)

	resp, err := http.Get(e.server.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
