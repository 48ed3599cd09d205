package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/petclinic-go/petclinic/pkg/clinic"
)

// pathID parses a numeric path segment. Non-numeric values behave like a
// missing entity.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, false
	}
	return id, true
}

// storeError maps store failures to responses: ErrNotFound becomes 404,
// anything else a logged generic 500.
func storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, clinic.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	slog.Error("store operation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// handleListOwners lists owners, optionally filtered by a case-insensitive
// last-name prefix.
func (a *Adapter) handleListOwners(w http.ResponseWriter, r *http.Request) {
	owners, err := a.store.ListOwners(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}

	if lastName := r.URL.Query().Get("lastName"); lastName != "" {
		prefix := strings.ToLower(lastName)
		filtered := make([]clinic.Owner, 0, len(owners))
		for _, o := range owners {
			if strings.HasPrefix(strings.ToLower(o.LastName), prefix) {
				filtered = append(filtered, o)
			}
		}
		owners = filtered
	}

	writeJSON(w, http.StatusOK, owners)
}

func (a *Adapter) handleGetOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "ownerId")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	owner, err := a.store.GetOwner(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, owner)
}

func (a *Adapter) handleCreateOwner(w http.ResponseWriter, r *http.Request) {
	var owner clinic.Owner
	if err := decodeJSON(r, &owner); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := a.store.CreateOwner(r.Context(), &owner)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *Adapter) handleUpdateOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "ownerId")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	var owner clinic.Owner
	if err := decodeJSON(r, &owner); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := a.store.UpdateOwner(r.Context(), id, &owner)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *Adapter) handleListPetTypes(w http.ResponseWriter, r *http.Request) {
	types, err := a.store.ListPetTypes(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (a *Adapter) handleGetPet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "petId")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	pet, err := a.store.GetPet(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

// handleCreatePet creates a pet for the owner named by the ownerId query
// parameter.
func (a *Adapter) handleCreatePet(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.Atoi(r.URL.Query().Get("ownerId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ownerId query parameter is required")
		return
	}
	var pet clinic.Pet
	if err := decodeJSON(r, &pet); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := a.store.CreatePet(r.Context(), ownerID, &pet)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *Adapter) handleUpdatePet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "petId")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	var pet clinic.Pet
	if err := decodeJSON(r, &pet); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := a.store.UpdatePet(r.Context(), id, &pet)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleListVets lists vets, optionally filtered by a case-insensitive
// specialty substring.
func (a *Adapter) handleListVets(w http.ResponseWriter, r *http.Request) {
	vets, err := a.store.ListVets(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}

	if specialty := r.URL.Query().Get("specialty"); specialty != "" {
		needle := strings.ToLower(specialty)
		filtered := make([]clinic.Vet, 0, len(vets))
		for _, v := range vets {
			for _, s := range v.Specialties {
				if strings.Contains(strings.ToLower(s.Name), needle) {
					filtered = append(filtered, v)
					break
				}
			}
		}
		vets = filtered
	}

	writeJSON(w, http.StatusOK, vets)
}

func (a *Adapter) handleGetVet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "vetId")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	vet, err := a.store.GetVet(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vet)
}
