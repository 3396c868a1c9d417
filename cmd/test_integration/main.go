// Command test_integration posts a legend and a plan to a running server and
// prints the counts. It exits non-zero on any failure.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	legend := flag.String("legend", "", "legend image")
	plan := flag.String("plan", "", "plan image")
	flag.Parse()

	if *legend == "" || *plan == "" {
		fmt.Println("usage: test_integration --legend L --plan P [--url URL]")
		os.Exit(2)
	}

	client := &http.Client{Timeout: 5 * time.Minute}

	fmt.Println("Starting Integration Test...")

	fmt.Println("1. Checking health...")
	resp, err := client.Get(*baseURL + "/health")
	if err != nil || resp.StatusCode != http.StatusOK {
		fmt.Printf("FAILED: Health check: %v\n", err)
		os.Exit(1)
	}
	resp.Body.Close()
	fmt.Println("PASSED: Health check")

	fmt.Println("2. Counting tags...")
	body, contentType, err := multipartBody(map[string]string{"legend": *legend, "plan": *plan})
	if err != nil {
		fmt.Printf("FAILED: Building request: %v\n", err)
		os.Exit(1)
	}
	if !sendRequest(client, *baseURL+"/api/v1/counts", contentType, body) {
		fmt.Println("FAILED: Count tags")
		os.Exit(1)
	}
	fmt.Println("PASSED: Count tags")
}

func multipartBody(files map[string]string) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		part, err := mw.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &body, mw.FormDataContentType(), nil
}

func sendRequest(client *http.Client, url, contentType string, body io.Reader) bool {
	resp, err := client.Post(url, contentType, body)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		pretty.Write(respBody)
	}
	fmt.Printf("Response: %s\n", pretty.String())
	return true
}
