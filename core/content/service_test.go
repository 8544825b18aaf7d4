package content

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnx/learnx/core/session"
	logsvc "github.com/learnx/learnx/services/logger"
	notifsvc "github.com/learnx/learnx/services/notifier"
)

type fakeContentApi struct {
	mu         sync.Mutex
	modules    map[string][]Module       // courseID -> modules
	files      map[string][]FileSummary  // moduleID -> files
	fileCalls  map[string]int            // moduleID -> ModuleFiles calls
	failFiles  map[string]bool
	uploadGate chan struct{} // when set, UploadModuleFile blocks until closed
}

func newFakeContentApi() *fakeContentApi {
	return &fakeContentApi{
		modules:   make(map[string][]Module),
		files:     make(map[string][]FileSummary),
		fileCalls: make(map[string]int),
		failFiles: make(map[string]bool),
	}
}

func (f *fakeContentApi) CourseModules(_ context.Context, _ session.Role, courseID string) ([]Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Module(nil), f.modules[courseID]...), nil
}

func (f *fakeContentApi) CreateModule(_ context.Context, courseID string, nm NewModule) (Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mod := Module{ID: "m-new", Title: nm.Title}
	f.modules[courseID] = append(f.modules[courseID], mod)
	return mod, nil
}

func (f *fakeContentApi) DeleteModule(_ context.Context, moduleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for courseID, mods := range f.modules {
		for i, m := range mods {
			if m.ID == moduleID {
				f.modules[courseID] = append(mods[:i], mods[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("not found")
}

func (f *fakeContentApi) ModuleFiles(_ context.Context, _ session.Role, moduleID string) ([]FileSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fileCalls[moduleID]++
	if f.failFiles[moduleID] {
		return nil, errors.New("boom")
	}
	return append([]FileSummary(nil), f.files[moduleID]...), nil
}

func (f *fakeContentApi) UploadModuleFile(_ context.Context, moduleID string, up Upload) (Uploaded, error) {
	if f.uploadGate != nil {
		<-f.uploadGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	fs := FileSummary{ID: "f-new", Title: up.Filename, Filename: up.Filename}
	f.files[moduleID] = append(f.files[moduleID], fs)
	return Uploaded{ID: fs.ID, Filename: up.Filename}, nil
}

func (f *fakeContentApi) DeleteFile(_ context.Context, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for moduleID, files := range f.files {
		for i, fl := range files {
			if fl.ID == fileID {
				f.files[moduleID] = append(files[:i], files[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("not found")
}

func (f *fakeContentApi) FileContent(_ context.Context, _ session.Role, fileID string) (FileContent, error) {
	return FileContent{Data: []byte("bytes of " + fileID), ContentType: "application/pdf"}, nil
}

func setup(api *fakeContentApi) *Service {
	return NewService(api, notifsvc.NewSilentService(), logsvc.NewNopLogger(), session.RoleInstructor)
}

func TestService_FilesLazyFetchAndCache(t *testing.T) {
	api := newFakeContentApi()
	api.modules["c1"] = []Module{{ID: "m1", Title: "Week 1"}}
	api.files["m1"] = []FileSummary{{ID: "f1", Title: "syllabus.pdf"}}
	svc := setup(api)
	require.NoError(t, svc.LoadModules(context.Background(), "c1"))

	files, err := svc.Files(context.Background(), "m1")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	_, err = svc.Files(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, api.fileCalls["m1"], "second access must hit the cache")
}

func TestService_FilesFetchFailureCachesEmpty(t *testing.T) {
	api := newFakeContentApi()
	api.modules["c1"] = []Module{{ID: "m1", Title: "Week 1"}}
	api.failFiles["m1"] = true
	svc := setup(api)
	require.NoError(t, svc.LoadModules(context.Background(), "c1"))

	files, err := svc.Files(context.Background(), "m1")
	assert.Error(t, err)
	assert.Empty(t, files)

	// the empty list is cached; the view renders instead of refetching forever
	files, err = svc.Files(context.Background(), "m1")
	assert.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, 1, api.fileCalls["m1"])
}

func TestService_UploadBusyModuleRejected(t *testing.T) {
	api := newFakeContentApi()
	api.modules["c1"] = []Module{{ID: "m1", Title: "Week 1"}}
	api.uploadGate = make(chan struct{})
	svc := setup(api)
	require.NoError(t, svc.LoadModules(context.Background(), "c1"))

	done := make(chan error, 1)
	go func() {
		_, err := svc.UploadFile(context.Background(), "m1", Upload{
			Filename: "slow.pdf", Body: strings.NewReader("x"),
		})
		done <- err
	}()

	// wait for the first upload to take the busy flag
	for !svc.Uploading("m1") {
		time.Sleep(time.Millisecond)
	}

	_, err := svc.UploadFile(context.Background(), "m1", Upload{
		Filename: "second.pdf", Body: strings.NewReader("y"),
	})
	assert.Equal(t, ErrUploadInProgress, err)

	close(api.uploadGate)
	require.NoError(t, <-done)
	assert.False(t, svc.Uploading("m1"))
}

func TestService_RemoveFileRefetchesOnlyThatModule(t *testing.T) {
	api := newFakeContentApi()
	api.modules["c1"] = []Module{{ID: "m1", Title: "Week 1"}, {ID: "m2", Title: "Week 2"}}
	api.files["m1"] = []FileSummary{{ID: "f1", Title: "a.pdf"}, {ID: "f2", Title: "b.pdf"}}
	api.files["m2"] = []FileSummary{{ID: "f3", Title: "c.pdf"}}
	svc := setup(api)
	require.NoError(t, svc.LoadModules(context.Background(), "c1"))

	_, err := svc.Files(context.Background(), "m1")
	require.NoError(t, err)
	_, err = svc.Files(context.Background(), "m2")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFile(context.Background(), "m1", "f1"))

	files, err := svc.Files(context.Background(), "m1")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	assert.Equal(t, 2, api.fileCalls["m1"], "deleted module list is re-fetched")
	assert.Equal(t, 1, api.fileCalls["m2"], "other modules keep their cache")
}

func TestService_AddModuleRefetches(t *testing.T) {
	api := newFakeContentApi()
	api.modules["c1"] = []Module{{ID: "m1", Title: "Week 1"}}
	svc := setup(api)
	require.NoError(t, svc.LoadModules(context.Background(), "c1"))

	mod, err := svc.AddModule(context.Background(), NewModule{Title: "Week 2"})
	require.NoError(t, err)
	assert.Equal(t, "m-new", mod.ID)
	assert.Len(t, svc.Modules(), 2)
}

func TestService_AddModuleWithoutCourse(t *testing.T) {
	svc := setup(newFakeContentApi())
	_, err := svc.AddModule(context.Background(), NewModule{Title: "Week 1"})
	assert.Equal(t, ErrNoCourse, err)
}

func TestFileSummary_IsMedia(t *testing.T) {
	assert.True(t, FileSummary{Title: "lecture.mp3"}.IsMedia())
	assert.True(t, FileSummary{Title: "Lecture.WAV"}.IsMedia())
	assert.False(t, FileSummary{Title: "notes.pdf"}.IsMedia())
	assert.False(t, FileSummary{Title: "mp3"}.IsMedia())
}
