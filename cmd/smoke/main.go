package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const sampleCSV = `Age of Subject,Time spent on Online Class,Rating of Online Class experience,Medium for online class,Time spent on self study,Time spent on fitness,Time spent on sleep,Time spent on social media,Prefered social media platform,Time spent on TV,Health issue during lockdown
21,2,Good,Laptop/Desktop,4,0,7,3,Linkedin,1,NO
21,0,Excellent,Smartphone,0,2,10,6,Youtube,0,NO
20,7,Very poor,Laptop/Desktop,3,0,6,2,Whatsapp,n,YES
20,3,Average,Smartphone,2,1,6,5,Instagram,No tv,NO
`

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	base    string
	session string
	http    *http.Client
}

func (c *client) do(method, path string, body interface{}) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", c.session)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

// step runs one request and prints the outcome. It returns the decoded envelope
// data, or nil when the request failed.
func (c *client) step(title, method, path string, body interface{}, wantStatus int) json.RawMessage {
	color.Yellow("\n%s", title)
	resp, raw, err := c.do(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode != wantStatus {
		color.Red("Status: %s (want %d)\n%s", resp.Status, wantStatus, raw)
		failures++
		return nil
	}
	color.Green("Status: %s", resp.Status)

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		fmt.Printf("%d bytes of %s\n", len(raw), resp.Header.Get("Content-Type"))
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		color.Red("Bad envelope: %v", err)
		failures++
		return nil
	}
	fmt.Println(env.Message)
	return env.Data
}

var failures int

func main() {
	base := flag.String("base", "http://localhost:3000/api/dashboard/v1", "dashboard API base URL")
	flag.Parse()

	c := &client{
		base:    *base,
		session: uuid.NewString(),
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	color.Cyan("🚀 Survey dashboard smoke run (session %s)\n", c.session)

	c.step("1. Empty view", "GET", "/view", nil, http.StatusOK)

	contents := "data:text/csv;base64," + base64.StdEncoding.EncodeToString([]byte(sampleCSV))
	c.step("2. Upload CSV", "POST", "/upload", map[string]interface{}{
		"contents":   contents,
		"filename":   "survey.csv",
		"table_name": "Smoke",
		"tab":        "tab-3",
	}, http.StatusOK)

	c.step("3. Switch to tab-5", "GET", "/view?tab=tab-5", nil, http.StatusOK)
	c.step("4. Unknown tab", "GET", "/view?tab=tab-9", nil, http.StatusBadRequest)
	c.step("5. Table page 1", "GET", "/table?page=1", nil, http.StatusOK)
	c.step("6. Edit a cell", "PATCH", "/table/cells", map[string]interface{}{
		"row": 0, "column": "Time spent on sleep", "value": 9,
	}, http.StatusOK)
	c.step("7. Chart PNG", "GET", "/charts/tab-5/png", nil, http.StatusOK)
	c.step("8. Chart HTML", "GET", "/charts/tab-1/html", nil, http.StatusOK)
	c.step("9. Purge", "POST", "/purge", nil, http.StatusOK)
	c.step("10. Chart PNG after purge", "GET", "/charts/tab-1/png", nil, http.StatusNotFound)

	bad := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))
	c.step("11. Unsupported upload", "POST", "/upload", map[string]interface{}{
		"contents": bad,
		"filename": "notes.txt",
	}, http.StatusOK)

	if failures > 0 {
		color.Red("\n❌ %d step(s) failed", failures)
		os.Exit(1)
	}
	color.Green("\n✅ All steps passed")
}
