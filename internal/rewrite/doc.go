// Package rewrite substitutes asset references in a bundle's root document
// with materialized resource handles.
//
// Two authoring tools are supported. Adobe Animate documents load scripts
// through src attributes; those scripts embed a createjs asset manifest
// whose entries are rewritten to carry handles. Google Web Designer
// documents reference images through the source attribute of gwd-image
// elements. References that match no archive entry are left as they are.
package rewrite
