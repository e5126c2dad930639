package texture

import "fmt"

// EntityKind classifies the geometry a texture is bound to.
type EntityKind uint8

const (
	XObj    EntityKind = iota // world object
	ObjPoly                   // polygon object
	Road                      // road surface
	Global                    // environment-global geometry
	Car                       // vehicle
	Lane                      // lane marker
	Sound                     // sound trigger
	Light                     // light source
	VRoad                     // virtual road guide

	entityKindCount
)

var entityKindNames = [entityKindCount]string{
	XObj:    "XOBJ",
	ObjPoly: "OBJ_POLY",
	Road:    "ROAD",
	Global:  "GLOBAL",
	Car:     "CAR",
	Lane:    "LANE",
	Sound:   "SOUND",
	Light:   "LIGHT",
	VRoad:   "VROAD",
}

// EntityKinds returns every entity kind in declaration order.
func EntityKinds() []EntityKind {
	ks := make([]EntityKind, 0, entityKindCount)
	for k := XObj; k < entityKindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

// String returns the entity kind name.
func (k EntityKind) String() string {
	if k < entityKindCount {
		return entityKindNames[k]
	}
	return fmt.Sprintf("EntityKind(%d)", uint8(k))
}

// ParseEntityKind parses an entity kind name such as "xobj" or "OBJ_POLY".
func ParseEntityKind(s string) (EntityKind, error) {
	key := normalizeName(s)
	for k := XObj; k < entityKindCount; k++ {
		if normalizeName(entityKindNames[k]) == key {
			return k, nil
		}
	}
	return XObj, fmt.Errorf("unknown entity kind %q", s)
}
