package webui

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/ecosort/wastesort"
	"github.com/ecosort/wastesort/internal/storage"
)

// categoryView is one category card on the home page.
type categoryView struct {
	Label    string
	Color    string
	Examples []string
}

// scoreView is one ranked row, percentage pre-formatted for the template.
type scoreView struct {
	Label   string
	Color   string
	Percent string
}

func scoreViews(ranked []wastesort.CategoryScore) []scoreView {
	out := make([]scoreView, 0, len(ranked))
	for _, cs := range ranked {
		out = append(out, scoreView{
			Label:   cs.Category.String(),
			Color:   cs.Category.ColorHex(),
			Percent: fmt.Sprintf("%.1f%%", cs.Score*100),
		})
	}
	return out
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var cards []categoryView
	for _, c := range wastesort.Categories() {
		cards = append(cards, categoryView{
			Label:    c.String(),
			Color:    c.ColorHex(),
			Examples: s.classifier.Catalog.ExamplesByCategory(c),
		})
	}
	s.render(w, "page_home", map[string]any{"Cards": cards})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}

	if r.Method == http.MethodPost {
		text := strings.TrimSpace(r.FormValue("text"))
		data["Query"] = text

		ranked := s.classifier.ClassifyText(text)
		data["Results"] = scoreViews(ranked)
		data["Uncertain"] = s.classifier.Uncertain(ranked)

		if item, err := s.classifier.LookupItem(text); err == nil {
			data["Item"] = item
		}

		if len(ranked) > 0 {
			s.persist(storage.Record{
				Action:     "text_classify",
				ItemName:   text,
				Category:   ranked[0].Category,
				Confidence: ranked[0].Score,
			})
		} else if text != "" {
			data["NoMatch"] = true
		}
	}

	s.render(w, "page_classify", data)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	data := map[string]any{"Query": query}
	cat := s.classifier.Catalog

	if query != "" {
		if item, err := cat.SearchByName(query); err == nil {
			data["Item"] = item
			data["ItemColor"] = item.Category.ColorHex()
			data["ItemCategory"] = item.Category.String()
		}
		var related []*wastesort.Item
		for _, it := range cat.SearchByKeyword(query) {
			related = append(related, it)
		}
		data["Related"] = related
	}

	s.render(w, "page_search", data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}

	if s.store != nil {
		if stats, err := s.store.CategoryStats(7); err == nil {
			total := 0
			for _, cc := range stats {
				total += cc.Count
			}
			type statView struct {
				Label string
				Color string
				Count int
			}
			var views []statView
			for _, cc := range stats {
				views = append(views, statView{
					Label: cc.Category.String(),
					Color: cc.Category.ColorHex(),
					Count: cc.Count,
				})
			}
			data["Stats"] = views
			data["Total"] = total
		} else {
			s.logger.Warn("load stats failed", "error", err)
		}

		if recent, err := s.store.RecentRecords(defaultUserID, 10); err == nil {
			data["Recent"] = recent
		}
	}

	s.render(w, "page_stats", data)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}

	if r.Method == http.MethodPost {
		s.classifyUpload(r, data)
	}

	s.render(w, "page_upload", data)
}

// classifyUpload runs the image path: decode, dedup against previously seen
// uploads, extract features, predict, persist. Every failure degrades to the
// fallback prediction instead of an error page.
func (s *Server) classifyUpload(r *http.Request, data map[string]any) {
	hint := strings.TrimSpace(r.FormValue("hint"))
	data["Hint"] = hint

	file, header, err := r.FormFile("image")
	if err != nil {
		data["Error"] = "请选择要上传的图片"
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, s.maxImageBytes+1))
	if err != nil || int64(len(raw)) > s.maxImageBytes {
		data["Error"] = "图片太大或无法读取"
		return
	}

	img, format, err := wastesort.DecodeImage(raw)
	if err != nil {
		s.logger.Debug("decode failed", "file", header.Filename, "error", err)
		data["Results"] = scoreViews(s.classifier.ClassifyImage(nil, hint))
		data["DecodeFailed"] = true
		return
	}

	var feat *wastesort.ImageFeatures

	// A perceptually identical upload reuses its stored analysis.
	if key, ok := s.similar.Lookup(img); ok && s.store != nil {
		if rec, err := s.store.ImageByHash(key); err == nil && rec != nil && rec.Features != nil {
			feat = rec.Features
			data["Reused"] = true
		}
	}

	if feat == nil {
		feat, err = wastesort.ExtractFeatures(img, format)
		if err != nil {
			s.logger.Debug("feature extraction failed", "file", header.Filename, "error", err)
			data["Results"] = scoreViews(s.classifier.ClassifyImage(nil, hint))
			return
		}

		rec := storage.ImageRecord{
			Hash:     feat.PerceptualHash,
			Format:   format,
			Features: feat,
		}
		if meta := wastesort.ExtractImageMetadata(raw); meta != nil {
			rec.CameraMake = meta.CameraMake
			rec.CameraModel = meta.CameraModel
		}
		if s.store != nil {
			if err := s.store.AddImageRecord(rec); err != nil {
				s.logger.Warn("persist image record failed", "error", err)
			}
		}
		s.similar.Remember(img, feat.PerceptualHash)
	}

	ranked := s.classifier.ClassifyImage(feat, hint)
	data["Results"] = scoreViews(ranked)
	data["Features"] = feat
	data["Preview"] = dataURL(raw, format)
	data["Uncertain"] = s.classifier.Uncertain(ranked)

	if len(ranked) > 0 {
		s.persist(storage.Record{
			Action:     "image_classify",
			ItemName:   header.Filename,
			Category:   ranked[0].Category,
			Confidence: ranked[0].Score,
		})
	}
}

// dataURL inlines the uploaded image back into the result page. The typed
// return keeps html/template from flagging the data scheme as unsafe.
func dataURL(data []byte, format string) template.URL {
	return template.URL(fmt.Sprintf("data:image/%s;base64,%s", format, base64.StdEncoding.EncodeToString(data)))
}
