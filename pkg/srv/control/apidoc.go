/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package control

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"

	"jinr.ru/greenlab/go-paramram/pkg/log"
)

//go:embed swagger.json
var swaggerJSON []byte

func loadApiDoc() (*loads.Document, error) {
	doc, err := loads.Analyzed(json.RawMessage(swaggerJSON), "")
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded API document: %s swagger %s", doc.Spec().Info.Title, doc.Version())
	return doc, nil
}

func (s *ApiServer) handleApiDoc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(s.doc.Raw())
	}
}

func apiDocUI() http.Handler {
	return middleware.Redoc(middleware.RedocOpts{
		Path:    "docs",
		SpecURL: "/swagger.json",
		Title:   "go-paramram API",
	}, http.NotFoundHandler())
}
