package client_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/chartlight/chartlight/pkg/client"
)

func TestClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Client Suite")
}

var _ = Describe("Client", func() {
	var (
		c      *client.Client
		server *httptest.Server
	)

	BeforeEach(func() {
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/chat/supervisor/stream":
				w.Header().Set("Content-Type", "application/x-ndjson")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"event":"llm_thinking","stage":"triage"}
{"event":"tool_call","tool_name":"lookup_notes"}
{"event":"final","content":"Review complete."}
`))
			case "/api/workflows/agent/stream":
				w.Header().Set("Content-Type", "application/x-ndjson")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"event":"agent_result","message":"sepsis_flag raised"}
{"event":"final_result","message":"done"}
`))
			case "/api/workflows/wf-legacy/results":
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{
					"rows": [
						{
							"mrn": "100234",
							"csn": "5001",
							"flags": {
								"sepsis_flag": {"state": true, "sources": [{"type": "notes", "id": "n-1"}]}
							}
						}
					]
				}`))
			case "/api/workflows/wf-outputs/results":
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{
					"output_definitions": [{"name": "sepsis_flag"}, {"name": "aki_flag"}],
					"output_values": [
						{"mrn": "100234", "csn": "5001", "name": "sepsis_flag", "source_type": "notes", "source_id": "n-1"},
						{"mrn": "100234", "csn": "5001", "name": "sepsis_flag", "source_type": "flowsheets", "source_id": "f-2"}
					]
				}`))
			case "/api/workflows/wf-missing/results":
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error": "workflow not found"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		c = client.NewClient(server.URL)
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("StreamSupervisor", func() {
		It("returns the raw event stream body", func() {
			body, err := c.StreamSupervisor(context.Background(), client.SupervisorRequest{
				Messages: []client.ChatMessage{{Role: "user", Content: "any sepsis indicators?"}},
			})
			Expect(err).NotTo(HaveOccurred())
			defer body.Close()

			var lines []string
			scanner := bufio.NewScanner(body)
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			Expect(scanner.Err()).NotTo(HaveOccurred())
			Expect(lines).To(HaveLen(3))
			Expect(lines[0]).To(ContainSubstring("llm_thinking"))
			Expect(lines[2]).To(ContainSubstring("final"))
		})
	})

	Describe("StreamAgent", func() {
		It("returns the workflow agent stream", func() {
			body, err := c.StreamAgent(context.Background(), client.AgentRequest{
				WorkflowID: "wf-1",
				Message:    "re-check encounter 5001",
				MRN:        "100234",
				CSN:        "5001",
			})
			Expect(err).NotTo(HaveOccurred())
			defer body.Close()

			scanner := bufio.NewScanner(body)
			Expect(scanner.Scan()).To(BeTrue())
			Expect(scanner.Text()).To(ContainSubstring("agent_result"))
		})
	})

	Describe("FetchResults", func() {
		It("normalizes legacy rows", func() {
			rows, err := c.FetchResults(context.Background(), "wf-legacy")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].MRN).To(Equal("100234"))
			Expect(rows[0].Flags["sepsis_flag"].State).To(BeTrue())
		})

		It("normalizes definitions and values", func() {
			rows, err := c.FetchResults(context.Background(), "wf-outputs")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Flags["sepsis_flag"].Sources).To(HaveLen(2))
			Expect(rows[0].Flags["aki_flag"].State).To(BeFalse())
		})

		It("surfaces backend error messages", func() {
			_, err := c.FetchResults(context.Background(), "wf-missing")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("workflow not found"))
			Expect(err.Error()).To(ContainSubstring("404"))
		})
	})

	Describe("error responses on streams", func() {
		It("decodes a JSON error body", func() {
			bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error": "dataset_id is required"}`))
			}))
			defer bad.Close()

			_, err := client.NewClient(bad.URL).StreamSupervisor(context.Background(), client.SupervisorRequest{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("dataset_id is required"))
		})

		It("falls back to the raw body when the error is not JSON", func() {
			bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("upstream unavailable"))
			}))
			defer bad.Close()

			_, err := client.NewClient(bad.URL).StreamSupervisor(context.Background(), client.SupervisorRequest{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("upstream unavailable"))
		})
	})
})
