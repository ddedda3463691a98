// Package jdihn maps catalog documents onto the JDIHN (Jaringan Dokumentasi
// dan Informasi Hukum Nasional) feed contract. Field names, nesting and
// null handling are fixed by the national standard, not by this codebase.
package jdihn

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jdihkota/jdih-api/internal/models"
)

const (
	Version    = "2.0"
	DataFormat = "JDIHN-2024"
)

type AuthorRecord struct {
	Nama      string  `json:"nama"`
	Institusi *string `json:"institusi"`
	Jabatan   *string `json:"jabatan"`
}

type SubjectBlock struct {
	BidangHukum []string `json:"bidang_hukum"`
	KataKunci   []string `json:"kata_kunci"`
}

type Metadata struct {
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	ViewCount     int64  `json:"view_count"`
	DownloadCount int64  `json:"download_count"`
}

// Record is one document in the JDIHN feed.
type Record struct {
	ID                  uint           `json:"id"`
	Judul               string         `json:"judul"`
	Abstrak             *string        `json:"abstrak"`
	NomorDokumen        *string        `json:"nomor_dokumen"`
	NomorPanggil        *string        `json:"nomor_panggil"`
	TEU                 *string        `json:"teu"`
	JenisDokumen        *string        `json:"jenis_dokumen"`
	TahunTerbit         *int           `json:"tahun_terbit"`
	TanggalPenetapan    *string        `json:"tanggal_penetapan"`
	TanggalPengundangan *string        `json:"tanggal_pengundangan"`
	Pengarang           []AuthorRecord `json:"pengarang"`
	Subjek              SubjectBlock   `json:"subjek"`
	Bahasa              string         `json:"bahasa"`
	Lokasi              *string        `json:"lokasi"`
	Catatan             *string        `json:"catatan"`
	Sumber              *string        `json:"sumber"`
	Metadata            Metadata       `json:"metadata"`
}

// AbstractRecord is the reduced shape of the abstract-only feed.
type AbstractRecord struct {
	ID           uint    `json:"id"`
	Judul        string  `json:"judul"`
	Abstrak      *string `json:"abstrak"`
	NomorDokumen *string `json:"nomor_dokumen"`
	JenisDokumen *string `json:"jenis_dokumen"`
	TahunTerbit  *int    `json:"tahun_terbit"`
}

// Transform maps a document with preloaded type/authors/subjects onto the
// feed record. Counter values are a snapshot taken at query time.
func Transform(document *models.Document) Record {
	record := Record{
		ID:           document.ID,
		Judul:        document.Title,
		Abstrak:      document.Abstract,
		NomorDokumen: document.DocumentNumber,
		NomorPanggil: document.CallNumber,
		TEU:          document.TEUNumber,
		JenisDokumen: typeSlug(document),
		TahunTerbit:  document.PublishedYear(),
		Bahasa:       language(document),
		Lokasi:       document.Location,
		Catatan:      document.Note,
		Sumber:       document.Source,
		Pengarang:    make([]AuthorRecord, 0, len(document.Authors)),
		Subjek: SubjectBlock{
			BidangHukum: make([]string, 0, len(document.Subjects)),
			KataKunci:   SplitKeywords(document.Keywords),
		},
		Metadata: Metadata{
			CreatedAt:     document.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:     document.UpdatedAt.UTC().Format(time.RFC3339),
			ViewCount:     document.ViewCount,
			DownloadCount: document.DownloadCount,
		},
	}

	if document.EffectiveDate != nil {
		record.TanggalPenetapan = datePtr(*document.EffectiveDate)
	}
	if document.PublishedDate != nil {
		record.TanggalPengundangan = datePtr(*document.PublishedDate)
	}

	// Pivot ordering has already been applied by the repository.
	for _, author := range document.Authors {
		record.Pengarang = append(record.Pengarang, AuthorRecord{
			Nama:      author.Name,
			Institusi: author.Institution,
			Jabatan:   author.Position,
		})
	}

	for _, subject := range document.Subjects {
		record.Subjek.BidangHukum = append(record.Subjek.BidangHukum, subject.Name)
	}

	return record
}

// TransformAbstract maps a document onto the abstract feed record.
func TransformAbstract(document *models.Document) AbstractRecord {
	return AbstractRecord{
		ID:           document.ID,
		Judul:        document.Title,
		Abstrak:      document.Abstract,
		NomorDokumen: document.DocumentNumber,
		JenisDokumen: typeSlug(document),
		TahunTerbit:  document.PublishedYear(),
	}
}

// SplitKeywords splits a comma-delimited keyword string, trimming each
// entry. Nil or blank input yields an empty, non-nil slice.
func SplitKeywords(keywords *string) []string {
	result := []string{}
	if keywords == nil {
		return result
	}
	for _, keyword := range strings.Split(*keywords, ",") {
		keyword = strings.TrimSpace(keyword)
		if keyword != "" {
			result = append(result, keyword)
		}
	}
	return result
}

func typeSlug(document *models.Document) *string {
	if document.DocumentType.ID == 0 {
		return nil
	}
	slug := document.DocumentType.Slug
	return &slug
}

func language(document *models.Document) string {
	if document.Language == "" {
		return "id"
	}
	return document.Language
}

func datePtr(date time.Time) *string {
	formatted := date.Format("2006-01-02")
	return &formatted
}

type ListMeta struct {
	Version      string `json:"version"`
	GeneratedAt  string `json:"generated_at"`
	TotalRecords int64  `json:"total_records"`
	Offset       int    `json:"offset"`
	Limit        int    `json:"limit"`
	DataFormat   string `json:"data_format"`
}

type Links struct {
	First string  `json:"first"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
	Last  string  `json:"last"`
}

type ListEnvelope struct {
	Meta  ListMeta `json:"meta"`
	Data  []Record `json:"data"`
	Links Links    `json:"links"`
}

type DocumentMeta struct {
	Version           string `json:"version"`
	GeneratedAt       string `json:"generated_at"`
	ComplianceChecked bool   `json:"compliance_checked"`
}

type DocumentEnvelope struct {
	Meta DocumentMeta `json:"meta"`
	Data Record       `json:"data"`
}

type AbstractMeta struct {
	Version      string `json:"version"`
	Type         string `json:"type"`
	GeneratedAt  string `json:"generated_at"`
	TotalRecords int64  `json:"total_records"`
	Offset       int    `json:"offset"`
	Limit        int    `json:"limit"`
}

type AbstractEnvelope struct {
	Meta AbstractMeta     `json:"meta"`
	Data []AbstractRecord `json:"data"`
}

// NewListEnvelope wraps feed records in the JDIHN pagination envelope.
// requestURL is the caller's full URL; every link keeps the caller's other
// query parameters and rewrites only offset.
func NewListEnvelope(records []Record, total int64, limit, offset int, requestURL *url.URL) ListEnvelope {
	return ListEnvelope{
		Meta: ListMeta{
			Version:      Version,
			GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
			TotalRecords: total,
			Offset:       offset,
			Limit:        limit,
			DataFormat:   DataFormat,
		},
		Data:  records,
		Links: buildLinks(total, limit, offset, requestURL),
	}
}

func NewDocumentEnvelope(record Record) DocumentEnvelope {
	return DocumentEnvelope{
		Meta: DocumentMeta{
			Version:           Version,
			GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
			ComplianceChecked: true,
		},
		Data: record,
	}
}

func NewAbstractEnvelope(records []AbstractRecord, total int64, limit, offset int) AbstractEnvelope {
	return AbstractEnvelope{
		Meta: AbstractMeta{
			Version:      Version,
			Type:         "abstract_feed",
			GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
			TotalRecords: total,
			Offset:       offset,
			Limit:        limit,
		},
		Data: records,
	}
}

func buildLinks(total int64, limit, offset int, requestURL *url.URL) Links {
	links := Links{
		First: offsetLink(requestURL, 0),
		Last:  offsetLink(requestURL, int(total/int64(limit))*limit),
	}

	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		link := offsetLink(requestURL, prev)
		links.Prev = &link
	}

	if int64(offset+limit) < total {
		link := offsetLink(requestURL, offset+limit)
		links.Next = &link
	}

	return links
}

// offsetLink rewrites the offset parameter on a copy of the request URL,
// preserving every other query parameter.
func offsetLink(requestURL *url.URL, offset int) string {
	cloned := *requestURL
	query := cloned.Query()
	query.Set("offset", strconv.Itoa(offset))
	cloned.RawQuery = query.Encode()
	return cloned.String()
}
