package upload

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/facebookgo/grace/gracehttp"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/heptiolabs/healthcheck"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skaura/transeval/internal/app/upload/api"
	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/messages"
	"github.com/skaura/transeval/internal/pkg/similarity"
)

const statusProcessing = "processing"

type serviceMetric struct {
	uploadResponseDur prometheus.ObserverVec
	uploadRequestSize prometheus.ObserverVec

	retransResponseDur prometheus.ObserverVec
	backendResponseDur prometheus.ObserverVec
}

// ServiceData keeps data required for service work
type ServiceData struct {
	FileSaver       FileSaver
	MessageSender   messages.Sender
	BackendProvider BackendProvider

	Port    int
	health  healthcheck.Handler
	metrics serviceMetric
}

//StartWebServer starts the HTTP service and listens for the requests
func StartWebServer(data *ServiceData) error {
	cmdapp.Log.Infof("Starting HTTP service at %d", data.Port)
	r := NewRouter(data)

	portStr := strconv.Itoa(data.Port)
	srv := http.Server{
		Addr:              ":" + portStr,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		Handler:           r,
	}

	w := cmdapp.Log.Writer()
	defer w.Close()
	l := log.New(w, "", 0)
	gracehttp.SetLogger(l)

	return gracehttp.Serve(&srv)
}

//NewRouter creates the router for HTTP service
func NewRouter(data *ServiceData) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	uh := promhttp.InstrumentHandlerDuration(data.metrics.uploadResponseDur,
		promhttp.InstrumentHandlerRequestSize(data.metrics.uploadRequestSize, uploadHandler{data: data}))
	rh := promhttp.InstrumentHandlerDuration(data.metrics.retransResponseDur, retranslateHandler{data: data})
	bh := promhttp.InstrumentHandlerDuration(data.metrics.backendResponseDur, backendsHandler{data: data})
	router.Methods("POST").Path("/text-similarities").Handler(uh)
	router.Methods("POST").Path("/text-similarities/retranslate").Handler(rh)
	router.Methods("GET").Path("/backends").Handler(bh)
	router.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	router.Methods("GET").Path("/live").HandlerFunc(data.health.LiveEndpoint)
	router.Methods("GET").Path("/ready").HandlerFunc(data.health.ReadyEndpoint)
	return router
}

type uploadHandler struct {
	data *ServiceData
}

func (h uploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Saving task files from %s", r.Host)

	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		http.Error(w, "Can't parse MultipartForm", http.StatusBadRequest)
		cmdapp.Log.Error(errors.Wrap(err, "Can't parse MultipartForm"))
		return
	}
	defer cleanFiles(r.MultipartForm)
	err = validateFormParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	email := r.FormValue(api.PrmEmail)
	if email != "" {
		err := checkmail.ValidateFormat(email)
		if err != nil {
			http.Error(w, "Wrong email", http.StatusBadRequest)
			cmdapp.Log.Errorf("Wrong email")
			return
		}
	}

	req := similarity.Request{}
	req.InputLanguage, err = similarity.ParseLanguage(r.FormValue(api.PrmInputLanguage))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	req.OutputLanguage, err = similarity.ParseLanguage(r.FormValue(api.PrmOutputLanguage))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	req.Backend, err = similarity.ParseBackend(r.FormValue(api.PrmTranslateType))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	req.ProjectID, err = parseProjectID(r.FormValue(api.PrmProjectID))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}

	inData, inHeader, err := takeFile(r, api.PrmInputFile)
	if err != nil {
		http.Error(w, "No input file", http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	outData, outHeader, err := takeFile(r, api.PrmOutputFile)
	if err != nil && err != http.ErrMissingFile {
		http.Error(w, "Wrong input form", http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}

	err = validateExtension(inHeader)
	if err == nil && outHeader != nil {
		err = validateExtension(outHeader)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}

	taskName := uuid.New().String()
	req.InputText = string(inData)
	req.InputTextKey = taskKey(taskName, inHeader.Filename)
	err = h.data.FileSaver.Save(req.InputTextKey, inData, textContentType)
	if err != nil {
		http.Error(w, "Can not save file", http.StatusInternalServerError)
		cmdapp.Log.Error(err)
		return
	}
	if outHeader != nil {
		req.OutputText = string(outData)
		req.OutputTextKey = taskKey(taskName, outHeader.Filename)
		err = h.data.FileSaver.Save(req.OutputTextKey, outData, textContentType)
		if err != nil {
			http.Error(w, "Can not save file", http.StatusInternalServerError)
			cmdapp.Log.Error(err)
			return
		}
	}

	msg := messages.NewWorkMessage(taskName, &req)
	msg.Email = email
	err = h.data.MessageSender.Send(msg, messages.Evaluate)
	if err != nil {
		http.Error(w, "Can not send evaluate message", http.StatusInternalServerError)
		cmdapp.Log.Error(err)
		return
	}

	writeResult(w, api.TaskResult{TaskName: taskName, Status: statusProcessing})
}

const textContentType = "text/plain"

type retranslateHandler struct {
	data *ServiceData
}

func (h retranslateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Retranslate request from %s", r.Host)

	var input api.RetranslateRequest
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(&input)
	if err != nil {
		http.Error(w, "Can't decode input", http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	if strings.TrimSpace(input.InputText) == "" {
		http.Error(w, "No input text", http.StatusBadRequest)
		cmdapp.Log.Errorf("No input text")
		return
	}
	if input.Email != "" {
		err := checkmail.ValidateFormat(input.Email)
		if err != nil {
			http.Error(w, "Wrong email", http.StatusBadRequest)
			cmdapp.Log.Errorf("Wrong email")
			return
		}
	}

	req := similarity.Request{InputText: input.InputText, ProjectID: input.ProjectID}
	req.InputLanguage, err = similarity.ParseLanguage(string(input.InputLanguage))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	req.OutputLanguage, err = similarity.ParseLanguage(string(input.OutputLanguage))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	// retranslation always goes through the GPT backend
	req.Backend = similarity.BackendGPT

	taskName := uuid.New().String()
	req.InputTextKey = "text_similarity_re/" + taskName + "/input_text.txt"
	err = h.data.FileSaver.Save(req.InputTextKey, []byte(req.InputText), textContentType)
	if err != nil {
		http.Error(w, "Can not save file", http.StatusInternalServerError)
		cmdapp.Log.Error(err)
		return
	}

	msg := messages.NewWorkMessage(taskName, &req)
	msg.Email = input.Email
	err = h.data.MessageSender.Send(msg, messages.Evaluate)
	if err != nil {
		http.Error(w, "Can not send evaluate message", http.StatusInternalServerError)
		cmdapp.Log.Error(err)
		return
	}

	writeResult(w, api.TaskResult{TaskName: taskName, Status: statusProcessing})
}

type backendsHandler struct {
	data *ServiceData
}

func (h backendsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Backends get %s", r.Host)
	res, err := h.data.BackendProvider.GetAll()
	if err != nil {
		http.Error(w, "Can not get backends", http.StatusInternalServerError)
		cmdapp.Log.Error(err)
		return
	}
	writeResult(w, res)
}

func writeResult(w http.ResponseWriter, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(result)
	if err != nil {
		http.Error(w, "Can not prepare result", http.StatusInternalServerError)
		cmdapp.Log.Error(err)
	}
}

func cleanFiles(f *multipart.Form) {
	if f != nil {
		f.RemoveAll()
	}
}

func taskKey(taskName, fileName string) string {
	return "text_similarity/" + taskName + "/" + filepath.Base(fileName)
}

func parseProjectID(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("No projectID")
	}
	res, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("Wrong projectID '%s'", s)
	}
	return res, nil
}

func validateFormParams(r *http.Request) error {
	form := r.Form
	allowed := map[string]bool{api.PrmEmail: true, api.PrmInputLanguage: true, api.PrmOutputLanguage: true,
		api.PrmTranslateType: true, api.PrmProjectID: true}
	for k := range form {
		_, f := allowed[k]
		if !f {
			return errors.Errorf("Unknown parameter '%s'", k)
		}
	}
	return nil
}

func takeFile(r *http.Request, paramName string) ([]byte, *multipart.FileHeader, error) {
	file, handler, err := r.FormFile(paramName)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Can't read form file %s", paramName)
	}
	return data, handler, nil
}

func validateExtension(h *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(h.Filename))
	if ext != ".txt" {
		return errors.New("wrong file extension: " + ext)
	}
	return nil
}
