// Package suggestions implementa el ciclo de vida de las sugerencias: envío
// público con imágenes, transición de estado, borrado y exportación a PDF.
package suggestions

import (
	"context"
	"fmt"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/dto"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/ports"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/repository"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// PDFGenerator puerto del generador de PDF de una sugerencia; las imágenes
// vienen ya descargadas.
type PDFGenerator interface {
	Generate(ctx context.Context, s *entity.Sugerencia, images [][]byte) ([]byte, error)
}

// UseCase casos de uso de sugerencias.
type UseCase struct {
	repo    repository.SugerenciaRepository
	storage ports.ObjectStorage
	pdf     PDFGenerator
	log     *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.SugerenciaRepository, storage ports.ObjectStorage, pdf PDFGenerator, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, storage: storage, pdf: pdf, log: log}
}

// ImageUpload es un archivo adjunto candidato del envío público.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ValidateImages aplica las reglas de adjuntos antes de cualquier llamada de
// red: se conservan los primeros 5 archivos aceptados; un archivo de más de
// 5MB se rechaza individualmente sin afectar a los válidos seleccionados
// junto a él. Devuelve los aceptados y una advertencia por cada rechazo.
func ValidateImages(files []ImageUpload) (accepted []ImageUpload, warnings []string) {
	for _, f := range files {
		if f.Size > entity.MaxImageSize {
			warnings = append(warnings, fmt.Sprintf("la imagen %s supera el máximo de 5MB", f.Filename))
			continue
		}
		if len(accepted) >= entity.MaxImages {
			warnings = append(warnings, fmt.Sprintf("máximo %d imágenes permitidas, %s descartada", entity.MaxImages, f.Filename))
			continue
		}
		accepted = append(accepted, f)
	}
	return accepted, warnings
}

// objectName genera el nombre de objeto: milisegundos + sufijo aleatorio,
// preservando la extensión original.
func objectName(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%d-%06x%s", time.Now().UnixMilli(), rand.Intn(1<<24), ext)
}

// Submit crea la sugerencia de un visitante verificado. El email viene del
// token de intake y no del formulario: los campos del reportante se
// escriben una sola vez y no vuelven a editarse. Las imágenes se suben en
// orden, secuencialmente.
func (uc *UseCase) Submit(ctx context.Context, verifiedEmail string, in dto.SubmitSugerenciaRequest, files []ImageUpload) (*entity.Sugerencia, []string, error) {
	if verifiedEmail == "" {
		return nil, nil, domain.ErrNotAuthenticated
	}
	if in.Nombre == "" || in.Apellido == "" || in.Zona == "" || in.Descripcion == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	accepted, warnings := ValidateImages(files)

	var urls []string
	for _, f := range accepted {
		url, err := uc.storage.Upload(ctx, objectName(f.Filename), f.ContentType, f.Data)
		if err != nil {
			return nil, warnings, fmt.Errorf("subir imagen %s: %w", f.Filename, err)
		}
		urls = append(urls, url)
	}

	var areaID *string
	if in.AreaID != "" {
		areaID = &in.AreaID
	}
	s := &entity.Sugerencia{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Apellido:    in.Apellido,
		Email:       verifiedEmail,
		Zona:        in.Zona,
		AreaID:      areaID,
		Descripcion: in.Descripcion,
		Images:      urls,
		Status:      entity.StatusPendiente,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, warnings, err
	}
	return s, warnings, nil
}

// Transition valida el nuevo estado y lo persiste. El grafo es conexo:
// cualquier estado puede pasar a cualquier otro, incluso reabrir un
// finalizado. Devuelve el registro actualizado para que toda vista abierta
// (lista y detalle) se sincronice desde una única fuente.
func (uc *UseCase) Transition(ctx context.Context, id string, newStatus entity.Status) (*entity.Sugerencia, error) {
	if !newStatus.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

// Delete elimina la sugerencia; la vista de detalle abierta debe cerrarse.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List devuelve las sugerencias más recientes primero, con el nombre de
// área resuelto cuando el esquema lo permite.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Sugerencia, error) {
	return uc.repo.List(ctx)
}

// Get devuelve una sugerencia por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Sugerencia, error) {
	return uc.repo.GetByID(ctx, id)
}

// maxPDFImages tope de imágenes incrustadas en el PDF para acotar el tamaño
// del documento.
const maxPDFImages = 3

// ExportPDF genera el resumen tabular en PDF con hasta 3 imágenes
// incrustadas. Una imagen que no se puede descargar se omite sin abortar la
// exportación. Devuelve el nombre de archivo derivado del prefijo del id.
func (uc *UseCase) ExportPDF(ctx context.Context, id string) (string, []byte, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}

	var images [][]byte
	for _, url := range s.Images {
		if len(images) >= maxPDFImages {
			break
		}
		data, err := uc.storage.Fetch(ctx, url)
		if err != nil {
			uc.log.Warn().Err(err).Str("url", url).Msg("imagen omitida del PDF")
			continue
		}
		images = append(images, data)
	}

	doc, err := uc.pdf.Generate(ctx, s, images)
	if err != nil {
		return "", nil, err
	}
	prefix := s.ID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("sugerencia_%s.pdf", prefix), doc, nil
}
