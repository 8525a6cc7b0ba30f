package workflow

import (
	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/filesystem"
	"github.com/arthur-debert/wflink/pkg/paths"
	"github.com/arthur-debert/wflink/pkg/plist"
)

// Descriptor field names
const (
	KeyBundleID = "bundleid"
	KeyName     = "name"
	KeyObjects  = "objects"
	KeyUID      = "uid"
	KeyType     = "type"
)

// Object is one entry of a descriptor's objects list
type Object struct {
	UID  string
	Type string
}

// Descriptor is the part of info.plist wflink cares about
type Descriptor struct {
	Path     string
	BundleID string
	Name     string
	Objects  []Object
}

// LoadDescriptor parses {dir}/info.plist. A missing objects field yields an
// empty list; a malformed one, or an object without a uid, fails the whole
// load so callers never act on half a descriptor.
func LoadDescriptor(fsys filesystem.FS, dir string) (*Descriptor, error) {
	return loadDescriptorFile(fsys, paths.DescriptorPath(dir))
}

// ReadBundleID returns the bundleid declared by the descriptor at path. A
// descriptor without one is ErrMalformedData.
func ReadBundleID(fsys filesystem.FS, path string) (string, error) {
	desc, err := loadDescriptorFile(fsys, path)
	if err != nil {
		return "", err
	}
	if desc.BundleID == "" {
		return "", errors.Newf(errors.ErrMalformedData, "descriptor has no %s", KeyBundleID).
			WithDetail("path", path)
	}
	return desc.BundleID, nil
}

func loadDescriptorFile(fsys filesystem.FS, path string) (*Descriptor, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read descriptor").
			WithDetail("path", path)
	}

	root, err := plist.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedData, "invalid descriptor").
			WithDetail("path", path)
	}

	desc := &Descriptor{Path: path}

	if desc.BundleID, _, err = root.GetString(KeyBundleID); err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedData, "invalid descriptor").
			WithDetail("path", path)
	}
	if desc.Name, _, err = root.GetString(KeyName); err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedData, "invalid descriptor").
			WithDetail("path", path)
	}

	objects, _, err := root.GetArray(KeyObjects)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedData, "invalid descriptor").
			WithDetail("path", path)
	}

	desc.Objects = make([]Object, 0, len(objects))
	for i, value := range objects {
		obj, err := objectFromValue(value)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrMalformedData, "invalid object at index %d", i).
				WithDetail("path", path).
				WithDetail("index", i)
		}
		desc.Objects = append(desc.Objects, obj)
	}

	return desc, nil
}

func objectFromValue(value plist.Value) (Object, error) {
	dict, ok := value.(*plist.Dict)
	if !ok {
		return Object{}, errors.Newf(errors.ErrMalformedData, "object is %s, expected dict", value.Kind())
	}

	uid, found, err := dict.GetString(KeyUID)
	if err != nil {
		return Object{}, err
	}
	if !found || uid == "" {
		return Object{}, errors.Newf(errors.ErrMalformedData, "object has no %s", KeyUID)
	}

	objType, _, err := dict.GetString(KeyType)
	if err != nil {
		return Object{}, err
	}

	return Object{UID: uid, Type: objType}, nil
}
