package metadata

import (
	"fmt"
	stdmath "math"
)

/** @brief The identifier the shader layer reserves for "no program". */
const InvalidID uint32 = stdmath.MaxUint32

/**
 * @brief Identifies a compiled shader program. Allocation and
 * compilation happen in the shader layer; this package only checks
 * validity.
 */
type ShaderID uint32

// InvalidShaderID never names a program.
const InvalidShaderID ShaderID = ShaderID(InvalidID)

func (id ShaderID) IsValid() bool { return id != InvalidShaderID }

func (id ShaderID) String() string {
	if !id.IsValid() {
		return "ShaderID(invalid)"
	}
	return fmt.Sprintf("ShaderID(%d)", uint32(id))
}

/**
 * @brief The per-pass program state an instance carries: which program
 * to use and the opaque per-instance data it needs (uniform values,
 * label colour, ...). Data is owned by the shader layer.
 */
type ShaderBinding struct {
	/** @brief The program used for the pass. */
	ID ShaderID
	/** @brief Opaque per-instance values for the program. */
	Data any
}

func NewShaderBinding(id ShaderID, data any) ShaderBinding {
	return ShaderBinding{ID: id, Data: data}
}

func (b ShaderBinding) ShaderID() ShaderID { return b.ID }
