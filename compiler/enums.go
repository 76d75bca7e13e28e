package compiler

// Style bearing constructs recognized in host modules.
// ENUM(css, styled, styledExtension, keyframes, globalStyle, layer, styleFunction, themeColors, dynamicColor, stableId, elementProps)
type Construct int
