package command

import (
	"context"
	"errors"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

type stubContent struct {
	draft     ports.NodeDraft
	updatedID int
	fields    map[string]any
	deletedID int
	ref       ports.NodeRef
	media     ports.MediaRef
	err       error
}

func (s *stubContent) CreateNode(_ context.Context, draft ports.NodeDraft) (ports.NodeRef, error) {
	s.draft = draft
	return s.ref, s.err
}

func (s *stubContent) UpdateNode(_ context.Context, id int, _ string, fields map[string]any) (ports.NodeRef, error) {
	s.updatedID = id
	s.fields = fields
	return s.ref, s.err
}

func (s *stubContent) DeleteNode(_ context.Context, id int, _ string) error {
	s.deletedID = id
	return s.err
}

func (s *stubContent) UploadMedia(_ context.Context, _, _, _ string) (ports.MediaRef, error) {
	return s.media, s.err
}

type stubGenerator struct {
	body    string
	tags    []string
	genErr  error
	tagsErr error

	topic    string
	override string
}

func (s *stubGenerator) Generate(_ context.Context, topic, _, override string) (string, error) {
	s.topic = topic
	s.override = override
	return s.body, s.genErr
}

func (s *stubGenerator) SuggestTags(context.Context, string) ([]string, error) {
	return s.tags, s.tagsErr
}

type stubQuery struct {
	nodes []ports.NodeSummary
	users []ports.UserSummary
	err   error

	term  string
	tags  []string
	role  string
	limit int
}

func (s *stubQuery) LatestNodes(_ context.Context, _ string, limit int) ([]ports.NodeSummary, error) {
	s.limit = limit
	return s.nodes, s.err
}

func (s *stubQuery) SearchNodes(_ context.Context, term, _ string, limit int) ([]ports.NodeSummary, error) {
	s.term = term
	s.limit = limit
	return s.nodes, s.err
}

func (s *stubQuery) UsersByRole(_ context.Context, role string, limit int) ([]ports.UserSummary, error) {
	s.role = role
	s.limit = limit
	return s.users, s.err
}

func (s *stubQuery) NodesWithTags(_ context.Context, tags []string, _ string, limit int) ([]ports.NodeSummary, error) {
	s.tags = tags
	s.limit = limit
	return s.nodes, s.err
}

type stubRunner struct {
	lookErr error
	result  ports.ProcessResult
	runErr  error

	spec ports.ProcessSpec
}

func (s *stubRunner) Run(_ context.Context, spec ports.ProcessSpec) (ports.ProcessResult, error) {
	s.spec = spec
	return s.result, s.runErr
}

func (s *stubRunner) LookPath(name string) (string, error) {
	if s.lookErr != nil {
		return "", s.lookErr
	}
	return "/usr/local/bin/" + name, nil
}

type stubScaffold struct {
	spec ports.SiteSpec
	info ports.SiteInfo
	err  error
}

func (s *stubScaffold) CreateSite(_ context.Context, spec ports.SiteSpec) (ports.SiteInfo, error) {
	s.spec = spec
	return s.info, s.err
}

var errBoom = errors.New("boom")

func ruleIntent(op domain.Operation, params domain.Params) domain.Intent {
	return domain.Intent{Operation: op, Params: params, Source: domain.SourceRule}
}
